package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/metrics"
	"github.com/estateline/estateline/internal/repository"
)

// MessageService is the dispatcher for message sends: validate the parties,
// append to the log, then flush the log best effort. "Accepted into the
// log" is success; a failed flush costs durability, never availability.
// Live delivery is not this service's concern — the transport entry point
// layers it on top.
type MessageService interface {
	SendPersonal(sender, receiver, content, timestamp string) (string, error)
	SendGroup(sender, group, content, timestamp string) (string, error)
	PersonalHistory(userA, userB string) ([]entity.PersonalMessage, error)
}

// MessagePolicy carries the caller-configurable policy knobs of the
// dispatcher. RequireMembership rejects group messages from non-members;
// it is off by default because the system has historically let any user
// post to any group.
type MessagePolicy struct {
	RequireMembership bool
}

// localMessageService owns the repositories: the topology where dispatch
// and persistence live in the same process.
type localMessageService struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	log    repository.MessageLog
	policy MessagePolicy
	logger zerolog.Logger
}

func NewLocalMessageService(users repository.UserRepository, groups repository.GroupRepository, log repository.MessageLog, policy MessagePolicy, logger zerolog.Logger) MessageService {
	return &localMessageService{
		users:  users,
		groups: groups,
		log:    log,
		policy: policy,
		logger: logger,
	}
}

func (m *localMessageService) SendPersonal(sender, receiver, content, timestamp string) (string, error) {
	if _, ok := m.users.Find(sender); !ok {
		return "", &NotFoundError{Kind: "sender", Name: sender}
	}
	if _, ok := m.users.Find(receiver); !ok {
		return "", &NotFoundError{Kind: "receiver", Name: receiver}
	}

	m.log.AppendPersonal(entity.PersonalMessage{
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		Timestamp: timestamp,
	})
	metrics.MessagesDispatched.WithLabelValues("personal").Inc()

	// The append is the source of truth; a failed flush is logged and the
	// send still counts as delivered to the log.
	if err := m.log.SavePersonal(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("personal_messages").Inc()
		m.logger.Error().Err(err).Msg("personal message snapshot save failed after send")
	}

	m.logger.Info().Str("sender", sender).Str("receiver", receiver).Msg("personal message recorded")
	return fmt.Sprintf("message sent from %q to %q", sender, receiver), nil
}

func (m *localMessageService) SendGroup(sender, group, content, timestamp string) (string, error) {
	if _, ok := m.users.Find(sender); !ok {
		return "", &NotFoundError{Kind: "sender", Name: sender}
	}
	g, ok := m.groups.Find(group)
	if !ok {
		return "", &NotFoundError{Kind: "group", Name: group}
	}
	if m.policy.RequireMembership && !g.HasMember(sender) {
		return "", ErrNotMember
	}

	m.log.AppendGroup(entity.GroupMessage{
		Sender:    sender,
		Group:     group,
		Content:   content,
		Timestamp: timestamp,
	})
	metrics.MessagesDispatched.WithLabelValues("group").Inc()

	if err := m.log.SaveGroup(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("group_messages").Inc()
		m.logger.Error().Err(err).Msg("group message snapshot save failed after send")
	}

	m.logger.Info().Str("sender", sender).Str("group", group).Msg("group message recorded")
	return fmt.Sprintf("message sent from %q to group %q", sender, group), nil
}

func (m *localMessageService) PersonalHistory(userA, userB string) ([]entity.PersonalMessage, error) {
	if _, ok := m.users.Find(userA); !ok {
		return nil, &NotFoundError{Kind: "user", Name: userA}
	}
	if _, ok := m.users.Find(userB); !ok {
		return nil, &NotFoundError{Kind: "user", Name: userB}
	}
	return m.log.PersonalBetween(userA, userB), nil
}
