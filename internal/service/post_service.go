package service

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/metrics"
	"github.com/estateline/estateline/internal/repository"
)

// PostService covers the forum: posts by section and comments.
type PostService interface {
	Create(author, title, content, section string) (entity.Post, error)
	BySection(section string) []entity.Post
	Get(id int) (entity.Post, error)
	AddComment(postID int, author, content string) (entity.Comment, error)
}

type localPostService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger zerolog.Logger) PostService {
	return &localPostService{posts: posts, users: users, logger: logger}
}

func (s *localPostService) Create(author, title, content, section string) (entity.Post, error) {
	if _, ok := s.users.Find(author); !ok {
		return entity.Post{}, &NotFoundError{Kind: "author", Name: author}
	}

	post := s.posts.AddPost(author, title, content, section)
	s.logger.Info().Int("post_id", post.ID).Str("author", author).Str("section", section).Msg("post created")

	if err := s.posts.Save(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("posts").Inc()
		s.logger.Error().Err(err).Msg("post snapshot save failed after creation")
	}

	return post, nil
}

func (s *localPostService) BySection(section string) []entity.Post {
	return s.posts.BySection(section)
}

func (s *localPostService) Get(id int) (entity.Post, error) {
	post, ok := s.posts.Get(id)
	if !ok {
		return entity.Post{}, &NotFoundError{Kind: "post", Name: formatPostID(id)}
	}
	return post, nil
}

func (s *localPostService) AddComment(postID int, author, content string) (entity.Comment, error) {
	if _, ok := s.users.Find(author); !ok {
		return entity.Comment{}, &NotFoundError{Kind: "author", Name: author}
	}
	comment, ok := s.posts.AddComment(postID, author, content)
	if !ok {
		return entity.Comment{}, &NotFoundError{Kind: "post", Name: formatPostID(postID)}
	}
	s.logger.Info().Int("post_id", postID).Str("author", author).Msg("comment added")
	return comment, nil
}

func formatPostID(id int) string {
	return "id " + strconv.Itoa(id)
}
