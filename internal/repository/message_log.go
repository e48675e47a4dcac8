package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/entity"
)

// MessageLog holds the append-only personal and group message lists. The two
// lists snapshot independently: a failure saving one never blocks the other.
type MessageLog interface {
	AppendPersonal(msg entity.PersonalMessage)
	AppendGroup(msg entity.GroupMessage)
	// PersonalBetween returns, in insertion order, every personal message
	// whose endpoints are the given pair in either direction.
	PersonalBetween(userA, userB string) []entity.PersonalMessage
	PersonalCount() int
	GroupCount() int

	LoadPersonal()
	LoadGroup()
	SavePersonal() error
	SaveGroup() error
}

type SnapshotMessageLog struct {
	mu           sync.RWMutex
	personal     []entity.PersonalMessage
	group        []entity.GroupMessage
	personalPath string
	groupPath    string
	logger       zerolog.Logger
}

func NewSnapshotMessageLog(personalPath, groupPath string, logger zerolog.Logger) *SnapshotMessageLog {
	return &SnapshotMessageLog{
		personalPath: personalPath,
		groupPath:    groupPath,
		logger:       logger,
	}
}

func (log *SnapshotMessageLog) AppendPersonal(msg entity.PersonalMessage) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.personal = append(log.personal, msg)
}

func (log *SnapshotMessageLog) AppendGroup(msg entity.GroupMessage) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.group = append(log.group, msg)
}

func (log *SnapshotMessageLog) PersonalBetween(userA, userB string) []entity.PersonalMessage {
	log.mu.RLock()
	defer log.mu.RUnlock()
	out := []entity.PersonalMessage{}
	for _, msg := range log.personal {
		if (msg.Sender == userA && msg.Receiver == userB) ||
			(msg.Sender == userB && msg.Receiver == userA) {
			out = append(out, msg)
		}
	}
	return out
}

func (log *SnapshotMessageLog) PersonalCount() int {
	log.mu.RLock()
	defer log.mu.RUnlock()
	return len(log.personal)
}

func (log *SnapshotMessageLog) GroupCount() int {
	log.mu.RLock()
	defer log.mu.RUnlock()
	return len(log.group)
}

// LoadPersonal is the one case where the log shrinks: the list is replaced
// wholesale by the snapshot contents.
func (log *SnapshotMessageLog) LoadPersonal() {
	var msgs []entity.PersonalMessage
	err := readSnapshot(log.personalPath, &msgs)
	switch {
	case err == nil:
	case err == errEmptySnapshot:
		log.logger.Info().Str("path", log.personalPath).Msg("no personal message snapshot, starting empty")
	default:
		log.logger.Error().Err(err).Str("path", log.personalPath).Msg("personal message snapshot unreadable, starting empty")
		msgs = nil
	}

	log.mu.Lock()
	log.personal = msgs
	log.mu.Unlock()
	log.logger.Info().Int("messages", len(msgs)).Msg("personal message log loaded")
}

func (log *SnapshotMessageLog) LoadGroup() {
	var msgs []entity.GroupMessage
	err := readSnapshot(log.groupPath, &msgs)
	switch {
	case err == nil:
	case err == errEmptySnapshot:
		log.logger.Info().Str("path", log.groupPath).Msg("no group message snapshot, starting empty")
	default:
		log.logger.Error().Err(err).Str("path", log.groupPath).Msg("group message snapshot unreadable, starting empty")
		msgs = nil
	}

	log.mu.Lock()
	log.group = msgs
	log.mu.Unlock()
	log.logger.Info().Int("messages", len(msgs)).Msg("group message log loaded")
}

func (log *SnapshotMessageLog) SavePersonal() error {
	log.mu.RLock()
	defer log.mu.RUnlock()
	return writeSnapshot(log.personalPath, log.personal)
}

func (log *SnapshotMessageLog) SaveGroup() error {
	log.mu.RLock()
	defer log.mu.RUnlock()
	return writeSnapshot(log.groupPath, log.group)
}
