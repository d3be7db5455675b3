package service

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
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/repository"
	"github.com/minhtri0795/github-dashboard-server/internal/timewindow"
	userModel "github.com/minhtri0795/github-dashboard-server/internal/user/model"
)

func setup(t *testing.T) (Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.User{}, &commitModel.Commit{}, &prModel.PullRequest{}))

	log := zap.NewNop().Sugar()
	return New(repository.New(db, log), log), db
}

func seedUser(t *testing.T, db *gorm.DB, githubID int64, login string) userModel.User {
	now := time.Now()
	user := userModel.User{GithubID: githubID, Login: login, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetOpenPRs_GroupsByRepository(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")

	now := time.Now()
	for i, repo := range []string{"acme/api", "acme/api", "acme/dashboard"} {
		require.NoError(t, db.Create(&prModel.PullRequest{
			PRNumber: i + 1, Title: "pr", State: prModel.StateOpen,
			AuthorID: alice.ID, RepoFullName: repo,
			CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
		}).Error)
	}

	resp, err := svc.GetOpenPRs(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Repositories, 2)
	// Biggest group first.
	assert.Equal(t, "acme/api", resp.Repositories[0].RepoFullName)
	assert.Equal(t, 2, resp.Repositories[0].TotalPRs)
	assert.Len(t, resp.Repositories[0].PullRequests, 2)
	assert.Equal(t, "acme/dashboard", resp.Repositories[1].RepoFullName)
}

func TestGetOpenPRs_DefaultWindow(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")

	now := time.Now()
	// One inside the default seven day window, one outside it.
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 1, Title: "recent", State: prModel.StateOpen,
		AuthorID: alice.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 2, Title: "stale", State: prModel.StateOpen,
		AuthorID: alice.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-timewindow.DefaultSpan - time.Hour),
		UpdatedAt: now.Add(-timewindow.DefaultSpan - time.Hour),
	}).Error)

	resp, err := svc.GetOpenPRs(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, "recent", resp.Repositories[0].PullRequests[0].Title)
}

func TestGetClosedPRs_CountsMerged(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")
	bob := seedUser(t, db, 43, "bob")

	now := time.Now()
	closedAt := now.Add(-time.Hour)
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 1, Title: "merged", State: prModel.StateClosed, Merged: true,
		AuthorID: alice.ID, MergedByID: &bob.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: closedAt,
		ClosedAt: &closedAt, MergedAt: &closedAt,
	}).Error)
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 2, Title: "abandoned", State: prModel.StateClosed, Merged: false,
		AuthorID: alice.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: closedAt, ClosedAt: &closedAt,
	}).Error)

	resp, err := svc.GetClosedPRs(ctx, nil, nil)
	require.NoError(t, err)

	require.Len(t, resp.Repositories, 1)
	assert.Equal(t, 2, resp.Repositories[0].TotalPRs)
	assert.Equal(t, 1, resp.Repositories[0].MergedPRs)
}

func TestGetCommitsByDate_GroupsAndSums(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")

	now := time.Now()
	commits := []commitModel.Commit{
		{SHA: "a", AuthorID: alice.ID, RepoFullName: "acme/api", Additions: 10, Deletions: 2, CommittedAt: now.Add(-time.Hour)},
		{SHA: "b", AuthorID: alice.ID, RepoFullName: "acme/api", Additions: 5, Deletions: 1, CommittedAt: now.Add(-2 * time.Hour)},
		{SHA: "c", AuthorID: alice.ID, RepoFullName: "acme/dashboard", Additions: 3, Deletions: 0, CommittedAt: now.Add(-3 * time.Hour)},
	}
	for i := range commits {
		require.NoError(t, db.Create(&commits[i]).Error)
	}

	resp, err := svc.GetCommitsByDate(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalCommits)
	require.Len(t, resp.Repositories, 2)
	api := resp.Repositories[0]
	assert.Equal(t, "acme/api", api.RepoFullName)
	assert.Equal(t, 2, api.TotalCommits)
	assert.Equal(t, 15, api.TotalAdditions)
	assert.Equal(t, 3, api.TotalDeletions)
}

func TestGetSelfMergedPRs_GroupsByUser(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")
	bob := seedUser(t, db, 43, "bob")

	now := time.Now()
	closedAt := now.Add(-time.Hour)
	selfMerge := func(number int, author userModel.User, repo string) *prModel.PullRequest {
		return &prModel.PullRequest{
			PRNumber: number, Title: "pr", State: prModel.StateClosed, Merged: true,
			AuthorID: author.ID, MergedByID: &author.ID, RepoFullName: repo,
			CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: closedAt,
			ClosedAt: &closedAt, MergedAt: &closedAt,
		}
	}

	require.NoError(t, db.Create(selfMerge(1, bob, "acme/api")).Error)
	require.NoError(t, db.Create(selfMerge(2, bob, "acme/dashboard")).Error)
	require.NoError(t, db.Create(selfMerge(3, alice, "acme/api")).Error)

	// Merged by someone else, not a self merge.
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 4, Title: "reviewed", State: prModel.StateClosed, Merged: true,
		AuthorID: alice.ID, MergedByID: &bob.ID, RepoFullName: "acme/api",
		CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: closedAt,
		ClosedAt: &closedAt, MergedAt: &closedAt,
	}).Error)

	resp, err := svc.GetSelfMergedPRs(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.Summary.TotalSelfMergedPRs)
	assert.Equal(t, 2, resp.Summary.UniqueUsers)

	require.Len(t, resp.UserStats, 2)
	assert.Equal(t, "bob", resp.UserStats[0].Login)
	assert.Equal(t, 2, resp.UserStats[0].TotalSelfMerges)
	assert.Equal(t, "alice", resp.UserStats[1].Login)

	require.Len(t, resp.RepositoryStats, 2)
	assert.Equal(t, "acme/api", resp.RepositoryStats[0].RepoFullName)
	assert.Equal(t, 2, resp.RepositoryStats[0].TotalSelfMerges)
}

func TestGetPRStatistics(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := seedUser(t, db, 42, "alice")

	now := time.Now()
	require.NoError(t, db.Create(&prModel.PullRequest{
		PRNumber: 1, Title: "pr", State: prModel.StateOpen,
		AuthorID: alice.ID, RepoFullName: "acme/api",
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	resp, err := svc.GetPRStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Summary.TotalPRs)
	assert.Equal(t, int64(1), resp.Summary.TotalOpenPRs)
	require.Len(t, resp.PRsByAuthor, 1)
	assert.Equal(t, "alice", resp.PRsByAuthor[0].Login)
}

func TestEmptyStores(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	prs, err := svc.GetAllPullRequests(ctx)
	require.NoError(t, err)
	assert.Zero(t, prs.Total)
	assert.NotNil(t, prs.PullRequests)

	open, err := svc.GetOpenPRs(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, open.Total)
	assert.Empty(t, open.Repositories)

	selfMerged, err := svc.GetSelfMergedPRs(ctx, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, selfMerged.Summary.TotalSelfMergedPRs)
	assert.Empty(t, selfMerged.UserStats)
}
