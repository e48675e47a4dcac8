package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/metrics"
)

// Snapshots groups every persisted collection behind one load/flush surface.
// Each save is attempted and its own failure logged; one bad file never
// blocks the others.
type Snapshots struct {
	Users    UserRepository
	Groups   GroupRepository
	Posts    PostRepository
	Messages MessageLog

	flushOnce sync.Once
	logger    zerolog.Logger
}

func NewSnapshots(users UserRepository, groups GroupRepository, posts PostRepository, messages MessageLog, logger zerolog.Logger) *Snapshots {
	return &Snapshots{
		Users:    users,
		Groups:   groups,
		Posts:    posts,
		Messages: messages,
		logger:   logger,
	}
}

// LoadAll replaces every collection from its snapshot file.
func (s *Snapshots) LoadAll() {
	s.Messages.LoadPersonal()
	s.Messages.LoadGroup()
	s.Users.Load()
	s.Groups.Load()
	s.Posts.Load()
	s.logger.Info().Msg("all collections loaded")
}

// SaveAll writes every collection out, best effort.
func (s *Snapshots) SaveAll() {
	saves := []struct {
		name string
		fn   func() error
	}{
		{"personal_messages", s.Messages.SavePersonal},
		{"group_messages", s.Messages.SaveGroup},
		{"users", s.Users.Save},
		{"groups", s.Groups.Save},
		{"posts", s.Posts.Save},
	}
	for _, save := range saves {
		if err := save.fn(); err != nil {
			metrics.SnapshotFailures.WithLabelValues(save.name).Inc()
			s.logger.Error().Err(err).Str("collection", save.name).Msg("snapshot save failed")
			continue
		}
		s.logger.Info().Str("collection", save.name).Msg("snapshot saved")
	}
}

// FlushOnExit runs the shutdown flush exactly once, however many shutdown
// signals arrive.
func (s *Snapshots) FlushOnExit() {
	s.flushOnce.Do(func() {
		s.logger.Info().Msg("flushing all collections on exit")
		s.SaveAll()
	})
}
