package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/repository"
)

// UserService covers the social surface of a user: friends and profile
// lookups.
type UserService interface {
	Friends(username string) ([]entity.Profile, error)
	AddFriend(username, friend string) error // Mutual: both users end up on each other's list
	StateSearch(username string) ([]entity.Profile, error)
}

type localUserService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewUserService(users repository.UserRepository, logger zerolog.Logger) UserService {
	return &localUserService{users: users, logger: logger}
}

func (s *localUserService) Friends(username string) ([]entity.Profile, error) {
	names, ok := s.users.Friends(username)
	if !ok {
		return nil, &NotFoundError{Kind: "user", Name: username}
	}
	profiles := []entity.Profile{}
	for _, name := range names {
		if friend, ok := s.users.Find(name); ok {
			profiles = append(profiles, friend.Profile())
		}
	}
	return profiles, nil
}

func (s *localUserService) AddFriend(username, friend string) error {
	if username == friend {
		return ErrSelfFriend
	}
	user, ok := s.users.Find(username)
	if !ok {
		return &NotFoundError{Kind: "user", Name: username}
	}
	if _, ok := s.users.Find(friend); !ok {
		return &NotFoundError{Kind: "friend", Name: friend}
	}
	if user.HasFriend(friend) {
		return fmt.Errorf("%q and %q: %w", username, friend, ErrAlreadyFriends)
	}

	s.users.AddFriend(username, friend)
	s.users.AddFriend(friend, username)
	s.logger.Info().Str("username", username).Str("friend", friend).Msg("friendship recorded")
	return nil
}

func (s *localUserService) StateSearch(username string) ([]entity.Profile, error) {
	user, ok := s.users.Find(username)
	if !ok {
		return nil, &NotFoundError{Kind: "user", Name: username}
	}
	return []entity.Profile{user.Profile()}, nil
}
