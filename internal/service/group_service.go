package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/metrics"
	"github.com/estateline/estateline/internal/repository"
)

// GroupService covers group lifecycle and membership.
type GroupService interface {
	Create(name, groupmaster string) (entity.Group, error) // Creates the group with the groupmaster as first member
	Join(name, username string) error
	Members(name string) ([]string, error)
}

type localGroupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewGroupService(groups repository.GroupRepository, users repository.UserRepository, logger zerolog.Logger) GroupService {
	return &localGroupService{groups: groups, users: users, logger: logger}
}

func (s *localGroupService) Create(name, groupmaster string) (entity.Group, error) {
	if _, ok := s.users.Find(groupmaster); !ok {
		return entity.Group{}, &NotFoundError{Kind: "groupmaster", Name: groupmaster}
	}
	if _, exists := s.groups.Find(name); exists {
		return entity.Group{}, fmt.Errorf("creating %q: %w", name, ErrDuplicateGroup)
	}

	group := entity.NewGroup(name, groupmaster)
	s.groups.Add(group)
	s.logger.Info().Str("group", name).Str("groupmaster", groupmaster).Msg("group created")

	if err := s.groups.Save(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("groups").Inc()
		s.logger.Error().Err(err).Msg("group snapshot save failed after creation")
	}

	return *group, nil
}

func (s *localGroupService) Join(name, username string) error {
	if _, ok := s.users.Find(username); !ok {
		return &NotFoundError{Kind: "user", Name: username}
	}
	added, found := s.groups.AddMember(name, username)
	if !found {
		return &NotFoundError{Kind: "group", Name: name}
	}
	if !added {
		return fmt.Errorf("%q already in group %q", username, name)
	}
	s.logger.Info().Str("group", name).Str("username", username).Msg("member joined group")
	return nil
}

func (s *localGroupService) Members(name string) ([]string, error) {
	group, ok := s.groups.Find(name)
	if !ok {
		return nil, &NotFoundError{Kind: "group", Name: name}
	}
	return group.Members, nil
}
