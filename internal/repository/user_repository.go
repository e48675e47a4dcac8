package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
)

// UserRepository manipulates the registered users. Lookups are linear scans
// by username; mutations happen under the repository's lock so callers never
// touch shared entity state directly.
type UserRepository interface {
	Add(user *entity.User)                    // Inserts a user. Uniqueness is the caller's concern, checked via Find.
	Find(username string) (entity.User, bool) // Retrieves a copy of the user with the given name.
	Remove(username string) bool              // Removes the user if present.
	UpdateState(username, state string) bool  // Sets the liveness state of the user.
	AddFriend(username, friend string) bool   // Records friend on username's list; false if already present or user unknown.
	Friends(username string) ([]string, bool) // Canonical usernames of the user's friends.
	Count() int

	Load()       // Replaces the collection from the snapshot file; empty on any failure.
	Save() error // Writes the whole collection to the snapshot file.
}

// Implementation backed by an in-memory list with a gob snapshot file.
type SnapshotUserRepository struct {
	mu     sync.RWMutex
	users  []*entity.User
	path   string
	logger zerolog.Logger
}

func NewSnapshotUserRepository(path string, logger zerolog.Logger) *SnapshotUserRepository {
	return &SnapshotUserRepository{path: path, logger: logger}
}

func (repo *SnapshotUserRepository) Add(user *entity.User) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users = append(repo.users, user)
}

func (repo *SnapshotUserRepository) Find(username string) (entity.User, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if u := repo.find(username); u != nil {
		return copyUser(u), true
	}
	return entity.User{}, false
}

func (repo *SnapshotUserRepository) Remove(username string) bool {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, u := range repo.users {
		if u.Username == username {
			repo.users = append(repo.users[:i], repo.users[i+1:]...)
			return true
		}
	}
	return false
}

func (repo *SnapshotUserRepository) UpdateState(username, state string) bool {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	u := repo.find(username)
	if u == nil {
		return false
	}
	u.State = state
	return true
}

func (repo *SnapshotUserRepository) AddFriend(username, friend string) bool {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	u := repo.find(username)
	if u == nil {
		return false
	}
	return u.AddFriend(friend)
}

func (repo *SnapshotUserRepository) Friends(username string) ([]string, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	u := repo.find(username)
	if u == nil {
		return nil, false
	}
	friends := make([]string, len(u.Friends))
	copy(friends, u.Friends)
	return friends, true
}

func (repo *SnapshotUserRepository) Count() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.users)
}

// Load replaces the whole collection from the snapshot file. A missing or
// corrupt file degrades to an empty collection: losing stale data beats
// refusing to start.
func (repo *SnapshotUserRepository) Load() {
	var users []*entity.User
	err := readSnapshot(repo.path, &users)
	switch {
	case err == nil:
	case err == errEmptySnapshot:
		repo.logger.Info().Str("path", repo.path).Msg("no user snapshot, starting empty")
	default:
		repo.logger.Error().Err(err).Str("path", repo.path).Msg("user snapshot unreadable, starting empty")
		users = nil
	}

	repo.mu.Lock()
	repo.users = users
	repo.mu.Unlock()
	repo.logger.Info().Int("users", len(users)).Msg("user collection loaded")
}

func (repo *SnapshotUserRepository) Save() error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return writeSnapshot(repo.path, repo.users)
}

// find returns the live entry; callers must hold the lock.
func (repo *SnapshotUserRepository) find(username string) *entity.User {
	for _, u := range repo.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func copyUser(u *entity.User) entity.User {
	out := *u
	out.Friends = make([]string, len(u.Friends))
	copy(out.Friends, u.Friends)
	return out
}
