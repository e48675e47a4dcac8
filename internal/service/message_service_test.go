package service

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estateline/estateline/internal/entity"
	"github.com/estateline/estateline/internal/repository"
)

type messageFixture struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	log    repository.MessageLog
}

func newMessageFixture(t *testing.T, dataDir string) messageFixture {
	t.Helper()
	if dataDir == "" {
		dataDir = t.TempDir()
	}
	f := messageFixture{
		users:  repository.NewSnapshotUserRepository(filepath.Join(dataDir, "users.gob"), zerolog.Nop()),
		groups: repository.NewSnapshotGroupRepository(filepath.Join(dataDir, "groups.gob"), zerolog.Nop()),
		log: repository.NewSnapshotMessageLog(
			filepath.Join(dataDir, "personal_messages.gob"),
			filepath.Join(dataDir, "group_messages.gob"),
			zerolog.Nop(),
		),
	}
	f.users.Add(entity.NewUser("alice", "tenant", "hash", "Shanghai", ""))
	f.users.Add(entity.NewUser("bob", "landlord", "hash", "Beijing", ""))
	f.groups.Add(entity.NewGroup("plumbers", "alice"))
	return f
}

func (f messageFixture) service(policy MessagePolicy) MessageService {
	return NewLocalMessageService(f.users, f.groups, f.log, policy, zerolog.Nop())
}

func TestSendPersonalAppendsToLog(t *testing.T) {
	f := newMessageFixture(t, "")
	svc := f.service(MessagePolicy{})

	confirmation, err := svc.SendPersonal("alice", "bob", "hi", "t1")
	require.NoError(t, err)
	assert.Equal(t, `message sent from "alice" to "bob"`, confirmation)

	history, err := svc.PersonalHistory("bob", "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "alice", history[0].Sender)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, "t1", history[0].Timestamp)
}

func TestSendPersonalUnknownParties(t *testing.T) {
	f := newMessageFixture(t, "")
	svc := f.service(MessagePolicy{})

	_, err := svc.SendPersonal("ghost", "bob", "boo", "t1")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "sender", notFound.Kind)

	_, err = svc.SendPersonal("alice", "ghost", "hello?", "t1")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "receiver", notFound.Kind)

	// Rejected sends never reach the log.
	assert.Equal(t, 0, f.log.PersonalCount())
}

func TestSendPersonalSucceedsWhenFlushFails(t *testing.T) {
	// Snapshot paths point into a directory that does not exist, so every
	// flush fails while the in-memory log still works.
	f := newMessageFixture(t, filepath.Join(t.TempDir(), "missing"))
	svc := f.service(MessagePolicy{})

	_, err := svc.SendPersonal("alice", "bob", "hi", "t1")
	assert.NoError(t, err)
	assert.Equal(t, 1, f.log.PersonalCount())
}

func TestSendGroup(t *testing.T) {
	f := newMessageFixture(t, "")
	svc := f.service(MessagePolicy{})

	confirmation, err := svc.SendGroup("bob", "plumbers", "meeting at 3", "t1")
	require.NoError(t, err)
	assert.Equal(t, `message sent from "bob" to group "plumbers"`, confirmation)
	assert.Equal(t, 1, f.log.GroupCount())

	_, err = svc.SendGroup("bob", "ghosts", "anyone?", "t2")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "group", notFound.Kind)
}

func TestSendGroupMembershipPolicy(t *testing.T) {
	f := newMessageFixture(t, "")
	svc := f.service(MessagePolicy{RequireMembership: true})

	// bob is not a member of plumbers.
	_, err := svc.SendGroup("bob", "plumbers", "meeting at 3", "t1")
	assert.ErrorIs(t, err, ErrNotMember)
	assert.Equal(t, 0, f.log.GroupCount())

	_, err = svc.SendGroup("alice", "plumbers", "meeting at 3", "t1")
	assert.NoError(t, err)
}

func TestPersonalHistoryUnknownUser(t *testing.T) {
	f := newMessageFixture(t, "")
	svc := f.service(MessagePolicy{})

	_, err := svc.PersonalHistory("alice", "ghost")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Kind)
}
