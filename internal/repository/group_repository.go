package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
)

// GroupRepository manipulates the chat groups, keyed by group name.
type GroupRepository interface {
	Add(group *entity.Group)
	Find(name string) (entity.Group, bool)
	Remove(name string) bool
	AddMember(name, username string) (added, found bool)
	RemoveMember(name, username string) (removed, found bool)
	Count() int

	Load()
	Save() error
}

type SnapshotGroupRepository struct {
	mu     sync.RWMutex
	groups []*entity.Group
	path   string
	logger zerolog.Logger
}

func NewSnapshotGroupRepository(path string, logger zerolog.Logger) *SnapshotGroupRepository {
	return &SnapshotGroupRepository{path: path, logger: logger}
}

func (repo *SnapshotGroupRepository) Add(group *entity.Group) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.groups = append(repo.groups, group)
}

func (repo *SnapshotGroupRepository) Find(name string) (entity.Group, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if g := repo.find(name); g != nil {
		return copyGroup(g), true
	}
	return entity.Group{}, false
}

func (repo *SnapshotGroupRepository) Remove(name string) bool {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, g := range repo.groups {
		if g.Name == name {
			repo.groups = append(repo.groups[:i], repo.groups[i+1:]...)
			return true
		}
	}
	return false
}

func (repo *SnapshotGroupRepository) AddMember(name, username string) (added, found bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	g := repo.find(name)
	if g == nil {
		return false, false
	}
	return g.AddMember(username), true
}

func (repo *SnapshotGroupRepository) RemoveMember(name, username string) (removed, found bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	g := repo.find(name)
	if g == nil {
		return false, false
	}
	return g.RemoveMember(username), true
}

func (repo *SnapshotGroupRepository) Count() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.groups)
}

func (repo *SnapshotGroupRepository) Load() {
	var groups []*entity.Group
	err := readSnapshot(repo.path, &groups)
	switch {
	case err == nil:
	case err == errEmptySnapshot:
		repo.logger.Info().Str("path", repo.path).Msg("no group snapshot, starting empty")
	default:
		repo.logger.Error().Err(err).Str("path", repo.path).Msg("group snapshot unreadable, starting empty")
		groups = nil
	}

	repo.mu.Lock()
	repo.groups = groups
	repo.mu.Unlock()
	repo.logger.Info().Int("groups", len(groups)).Msg("group collection loaded")
}

func (repo *SnapshotGroupRepository) Save() error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return writeSnapshot(repo.path, repo.groups)
}

func (repo *SnapshotGroupRepository) find(name string) *entity.Group {
	for _, g := range repo.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func copyGroup(g *entity.Group) entity.Group {
	out := *g
	out.Members = make([]string, len(g.Members))
	copy(out.Members, g.Members)
	return out
}
