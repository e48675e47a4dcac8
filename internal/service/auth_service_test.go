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

func newAuthFixture(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewSnapshotUserRepository(filepath.Join(t.TempDir(), "users.gob"), zerolog.Nop())
	return NewAuthService(users, zerolog.Nop()), users
}

func TestRegisterAndLogin(t *testing.T) {
	auth, users := newAuthFixture(t)

	profile, err := auth.Register("alice", "tenant", "s3cret", "Shanghai", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "tenant", profile.Identity)
	assert.Equal(t, "tenant", profile.Role, "role defaults to identity")
	assert.Equal(t, entity.StateInitial, profile.State)

	profile, err = auth.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, entity.StateOnline, profile.State)

	stored, ok := users.Find("alice")
	require.True(t, ok)
	assert.Equal(t, entity.StateOnline, stored.State)
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password is never stored in the clear")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, _ := newAuthFixture(t)

	_, err := auth.Register("alice", "tenant", "s3cret", "Shanghai", "")
	require.NoError(t, err)

	_, err = auth.Register("alice", "landlord", "other", "Beijing", "")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLoginFailures(t *testing.T) {
	auth, _ := newAuthFixture(t)
	_, err := auth.Register("alice", "tenant", "s3cret", "Shanghai", "")
	require.NoError(t, err)

	_, err = auth.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = auth.Login("ghost", "s3cret")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLogout(t *testing.T) {
	auth, users := newAuthFixture(t)
	_, err := auth.Register("alice", "tenant", "s3cret", "Shanghai", "")
	require.NoError(t, err)
	_, err = auth.Login("alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, auth.Logout("alice"))
	stored, ok := users.Find("alice")
	require.True(t, ok)
	assert.Equal(t, entity.StateOffline, stored.State)

	var notFound *NotFoundError
	assert.ErrorAs(t, auth.Logout("ghost"), &notFound)
}
