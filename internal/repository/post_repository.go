package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
)

// PostRepository manipulates the forum posts. Post and comment ids are
// sequential within a process lifetime and restored from the highest ids
// seen in the snapshot on load.
type PostRepository interface {
	AddPost(author, title, content, section string) entity.Post
	Get(id int) (entity.Post, bool)
	BySection(section string) []entity.Post
	AddComment(postID int, author, content string) (entity.Comment, bool)
	Count() int

	Load()
	Save() error
}

type SnapshotPostRepository struct {
	mu            sync.RWMutex
	posts         []*entity.Post
	nextPostID    int
	nextCommentID int
	path          string
	logger        zerolog.Logger
}

func NewSnapshotPostRepository(path string, logger zerolog.Logger) *SnapshotPostRepository {
	return &SnapshotPostRepository{
		nextPostID:    1,
		nextCommentID: 1,
		path:          path,
		logger:        logger,
	}
}

func (repo *SnapshotPostRepository) AddPost(author, title, content, section string) entity.Post {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	post := entity.NewPost(repo.nextPostID, author, title, content, section)
	repo.nextPostID++
	repo.posts = append(repo.posts, post)
	return copyPost(post)
}

func (repo *SnapshotPostRepository) Get(id int) (entity.Post, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if p := repo.find(id); p != nil {
		return copyPost(p), true
	}
	return entity.Post{}, false
}

func (repo *SnapshotPostRepository) BySection(section string) []entity.Post {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := []entity.Post{}
	for _, p := range repo.posts {
		if p.Section == section {
			out = append(out, copyPost(p))
		}
	}
	return out
}

func (repo *SnapshotPostRepository) AddComment(postID int, author, content string) (entity.Comment, bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	p := repo.find(postID)
	if p == nil {
		return entity.Comment{}, false
	}
	comment := entity.NewComment(repo.nextCommentID, postID, author, content)
	repo.nextCommentID++
	p.Comments = append(p.Comments, comment)
	return *comment, true
}

func (repo *SnapshotPostRepository) Count() int {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.posts)
}

func (repo *SnapshotPostRepository) Load() {
	var posts []*entity.Post
	err := readSnapshot(repo.path, &posts)
	switch {
	case err == nil:
	case err == errEmptySnapshot:
		repo.logger.Info().Str("path", repo.path).Msg("no post snapshot, starting empty")
	default:
		repo.logger.Error().Err(err).Str("path", repo.path).Msg("post snapshot unreadable, starting empty")
		posts = nil
	}

	nextPost, nextComment := 1, 1
	for _, p := range posts {
		if p.ID >= nextPost {
			nextPost = p.ID + 1
		}
		for _, c := range p.Comments {
			if c.ID >= nextComment {
				nextComment = c.ID + 1
			}
		}
	}

	repo.mu.Lock()
	repo.posts = posts
	repo.nextPostID = nextPost
	repo.nextCommentID = nextComment
	repo.mu.Unlock()
	repo.logger.Info().Int("posts", len(posts)).Msg("post collection loaded")
}

func (repo *SnapshotPostRepository) Save() error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return writeSnapshot(repo.path, repo.posts)
}

func (repo *SnapshotPostRepository) find(id int) *entity.Post {
	for _, p := range repo.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func copyPost(p *entity.Post) entity.Post {
	out := *p
	out.Comments = make([]*entity.Comment, len(p.Comments))
	for i, c := range p.Comments {
		cc := *c
		out.Comments[i] = &cc
	}
	return out
}
