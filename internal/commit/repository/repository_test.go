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

	"github.com/minhtri0795/github-dashboard-server/internal/commit/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Commit{})
	require.NoError(t, err)

	return db
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	commit := &model.Commit{
		SHA: "abc", AuthorID: 1, Message: "initial",
		RepoFullName: "acme/api", Branch: "main",
		Additions: 10, Deletions: 2, Total: 12,
		CommittedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, commit))
	assert.NotZero(t, commit.ID)
}

func TestRepository_ListByRepo(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &model.Commit{
		SHA: "older", AuthorID: 1, RepoFullName: "acme/api", CommittedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &model.Commit{
		SHA: "newer", AuthorID: 1, RepoFullName: "acme/api", CommittedAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &model.Commit{
		SHA: "elsewhere", AuthorID: 1, RepoFullName: "acme/dashboard", CommittedAt: now,
	}))

	commits, err := repo.ListByRepo(ctx, "acme/api")
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "newer", commits[0].SHA)
	assert.Equal(t, "older", commits[1].SHA)
}

func TestRepository_ListBySHA(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := New(db, zap.NewNop().Sugar())

	now := time.Now()
	// Synthetic synchronize records can repeat a sha.
	require.NoError(t, repo.Create(ctx, &model.Commit{
		SHA: "dup", AuthorID: 1, RepoFullName: "acme/api", CommittedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.Create(ctx, &model.Commit{
		SHA: "dup", AuthorID: 1, RepoFullName: "acme/api", CommittedAt: now,
	}))

	commits, err := repo.ListBySHA(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, commits, 2)

	none, err := repo.ListBySHA(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
