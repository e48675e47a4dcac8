package repository

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryAssignsSequentialIDs(t *testing.T) {
	repo := NewSnapshotPostRepository(filepath.Join(t.TempDir(), "posts.gob"), zerolog.Nop())

	first := repo.AddPost("alice", "Leaky faucet", "Any advice?", "repairs")
	second := repo.AddPost("bob", "Noise complaint", "Upstairs again.", "disputes")

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.NotEmpty(t, first.Time)
}

func TestPostRepositoryBySection(t *testing.T) {
	repo := NewSnapshotPostRepository(filepath.Join(t.TempDir(), "posts.gob"), zerolog.Nop())
	repo.AddPost("alice", "Leaky faucet", "Any advice?", "repairs")
	repo.AddPost("bob", "Noise complaint", "Upstairs again.", "disputes")
	repo.AddPost("carol", "Paint peeling", "North wall.", "repairs")

	repairs := repo.BySection("repairs")
	require.Len(t, repairs, 2)
	assert.Equal(t, "Leaky faucet", repairs[0].Title)
	assert.Equal(t, "Paint peeling", repairs[1].Title)

	assert.Empty(t, repo.BySection("leasing"))
}

func TestPostRepositoryComments(t *testing.T) {
	repo := NewSnapshotPostRepository(filepath.Join(t.TempDir(), "posts.gob"), zerolog.Nop())
	post := repo.AddPost("alice", "Leaky faucet", "Any advice?", "repairs")

	comment, ok := repo.AddComment(post.ID, "bob", "Call a plumber.")
	require.True(t, ok)
	assert.Equal(t, 1, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)

	_, ok = repo.AddComment(99, "bob", "Into the void.")
	assert.False(t, ok)

	got, ok := repo.Get(post.ID)
	require.True(t, ok)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Call a plumber.", got.Comments[0].Content)
}

func TestPostRepositoryIDSequenceSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.gob")

	repo := NewSnapshotPostRepository(path, zerolog.Nop())
	repo.AddPost("alice", "First", "one", "repairs")
	post := repo.AddPost("alice", "Second", "two", "repairs")
	repo.AddComment(post.ID, "bob", "noted")
	require.NoError(t, repo.Save())

	reloaded := NewSnapshotPostRepository(path, zerolog.Nop())
	reloaded.Load()
	require.Equal(t, 2, reloaded.Count())

	// New ids continue past the highest persisted ones.
	next := reloaded.AddPost("carol", "Third", "three", "repairs")
	assert.Equal(t, 3, next.ID)
	comment, ok := reloaded.AddComment(next.ID, "bob", "again")
	require.True(t, ok)
	assert.Equal(t, 2, comment.ID)
}
