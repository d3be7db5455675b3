package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	commitModel "github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
	"github.com/minhtri0795/github-dashboard-server/internal/user/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.User{}, &commitModel.Commit{}, &prModel.PullRequest{})
	require.NoError(t, err)

	return db
}

func TestRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on first sight", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		user, err := repo.FindOrCreate(ctx, model.Account{
			ID:        42,
			Login:     "alice",
			AvatarURL: "https://avatars.example.com/alice.png",
			Type:      "User",
		})

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, int64(42), user.GithubID)
		assert.Equal(t, "alice", user.Login)
		assert.Equal(t, "https://avatars.example.com/alice.png", user.AvatarURL)
	})

	t.Run("returns existing row keyed on github id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		first, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice"})
		require.NoError(t, err)

		second, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice-renamed"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		// Profile fields are captured at first sight and never refreshed.
		assert.Equal(t, "alice", second.Login)

		var count int64
		require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("falls back to login lookup without numeric id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		created, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice"})
		require.NoError(t, err)

		// Push commit authors carry name/email/username but no numeric id.
		resolved, err := repo.FindOrCreate(ctx, model.Account{Username: "alice", Name: "Alice Example"})
		require.NoError(t, err)

		assert.Equal(t, created.ID, resolved.ID)
	})

	t.Run("rejects account with no identity", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		_, err := repo.FindOrCreate(ctx, model.Account{})
		assert.ErrorIs(t, err, model.ErrEmptyAccount)
	})
}

func TestRepository_TimestampsRoundTrip(t *testing.T) {
	// Created rows must come back with real time.Time timestamps when
	// re-read through the driver, not driver-native strings.
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	created, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice"})
	require.NoError(t, err)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, created.ID).Error)
	assert.False(t, reloaded.CreatedAt.IsZero())
	assert.False(t, reloaded.UpdatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), reloaded.CreatedAt, time.Minute)
}

func TestRepository_GetByLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		_, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice"})
		require.NoError(t, err)

		user, err := repo.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.GithubID)
	})

	t.Run("not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := New(db, zap.NewNop().Sugar())

		_, err := repo.GetByLogin(ctx, "nobody")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	now := time.Now()
	old := model.User{GithubID: 1, Login: "old", CreatedAt: now.Add(-30 * 24 * time.Hour), UpdatedAt: now}
	recent := model.User{GithubID: 2, Login: "recent", CreatedAt: now.Add(-time.Hour), UpdatedAt: now}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	users, err := repo.List(ctx, now.Add(-7*24*time.Hour), now)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "recent", users[0].Login)
}

func TestRepository_CountContributions(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	user, err := repo.FindOrCreate(ctx, model.Account{ID: 42, Login: "alice"})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 1, Title: "one", State: prModel.StateOpen,
		AuthorID: user.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&commitModel.Commit{
		SHA: "abc", AuthorID: user.ID, RepoFullName: "acme/api",
		CommittedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&commitModel.Commit{
		SHA: "outside", AuthorID: user.ID, RepoFullName: "acme/api",
		CommittedAt: now.Add(-60 * 24 * time.Hour),
	}).Error)

	prs, commits, err := repo.CountContributions(ctx, user.ID, now.Add(-7*24*time.Hour), now)
	require.NoError(t, err)

	assert.Equal(t, int64(1), prs)
	assert.Equal(t, int64(1), commits)
}
