package repository

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estateline/estateline/internal/entity"
)

func newTestLog(t *testing.T) *SnapshotMessageLog {
	t.Helper()
	dir := t.TempDir()
	return NewSnapshotMessageLog(
		filepath.Join(dir, "personal.gob"),
		filepath.Join(dir, "group.gob"),
		zerolog.Nop(),
	)
}

func TestMessageLogPersonalBetweenIsSymmetric(t *testing.T) {
	log := newTestLog(t)

	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "bob", Content: "hi", Timestamp: "t1"})
	log.AppendPersonal(entity.PersonalMessage{Sender: "bob", Receiver: "alice", Content: "hey", Timestamp: "t2"})
	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "carol", Content: "psst", Timestamp: "t3"})
	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "bob", Content: "there?", Timestamp: "t4"})

	got := log.PersonalBetween("alice", "bob")
	require.Len(t, got, 3)
	assert.Equal(t, "hi", got[0].Content)
	assert.Equal(t, "hey", got[1].Content)
	assert.Equal(t, "there?", got[2].Content)

	// Same conversation regardless of argument order.
	assert.Equal(t, got, log.PersonalBetween("bob", "alice"))

	assert.Empty(t, log.PersonalBetween("bob", "carol"))
}

func TestMessageLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	personal := filepath.Join(dir, "personal.gob")
	group := filepath.Join(dir, "group.gob")

	log := NewSnapshotMessageLog(personal, group, zerolog.Nop())
	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "bob", Content: "hi", Timestamp: "t1"})
	log.AppendGroup(entity.GroupMessage{Sender: "alice", Group: "plumbers", Content: "meeting", Timestamp: "t2"})
	require.NoError(t, log.SavePersonal())
	require.NoError(t, log.SaveGroup())

	reloaded := NewSnapshotMessageLog(personal, group, zerolog.Nop())
	reloaded.LoadPersonal()
	reloaded.LoadGroup()

	assert.Equal(t, 1, reloaded.PersonalCount())
	assert.Equal(t, 1, reloaded.GroupCount())
	msgs := reloaded.PersonalBetween("alice", "bob")
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
}

func TestMessageLogSavesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	// Group snapshot path points into a directory that does not exist,
	// so only the group save can fail.
	log := NewSnapshotMessageLog(
		filepath.Join(dir, "personal.gob"),
		filepath.Join(dir, "missing", "group.gob"),
		zerolog.Nop(),
	)
	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "bob", Content: "hi", Timestamp: "t1"})
	log.AppendGroup(entity.GroupMessage{Sender: "alice", Group: "plumbers", Content: "meeting", Timestamp: "t2"})

	assert.NoError(t, log.SavePersonal())
	assert.Error(t, log.SaveGroup())
}

func TestMessageLogLoadMissingFiles(t *testing.T) {
	log := newTestLog(t)
	log.AppendPersonal(entity.PersonalMessage{Sender: "alice", Receiver: "bob", Content: "hi", Timestamp: "t1"})

	log.LoadPersonal()
	log.LoadGroup()
	assert.Equal(t, 0, log.PersonalCount())
	assert.Equal(t, 0, log.GroupCount())
}
