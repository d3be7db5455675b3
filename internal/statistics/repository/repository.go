// Package repository provides data access layer for the statistics module.
// Every method is a thin query wrapper: run the aggregation, return the rows.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	commitModel "github.com/minhtri0795/github-dashboard-server/internal/commit/model"
	prModel "github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
	"github.com/minhtri0795/github-dashboard-server/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// ListPullRequests returns all pull requests with authors, newest first.
	ListPullRequests(ctx context.Context) ([]prModel.PullRequest, error)

	// GetPRSummary returns overall pull request counts.
	GetPRSummary(ctx context.Context) (*model.PRSummary, error)

	// GetPRsByAuthor returns per-author pull request counts.
	GetPRsByAuthor(ctx context.Context) ([]model.AuthorPRStats, error)

	// GetPRsByRepository returns per-repository pull request counts.
	GetPRsByRepository(ctx context.Context) ([]model.RepositoryPRStats, error)

	// ListPRsByState returns pull requests in a state created within [start, end].
	ListPRsByState(ctx context.Context, state string, start, end time.Time) ([]prModel.PullRequest, error)

	// ListCommits returns commits committed within [start, end].
	ListCommits(ctx context.Context, start, end time.Time) ([]commitModel.Commit, error)

	// GetCommitSummary returns overall commit counts.
	GetCommitSummary(ctx context.Context) (*model.CommitSummary, error)

	// GetCommitsByAuthor returns per-author commit aggregates.
	GetCommitsByAuthor(ctx context.Context) ([]model.AuthorCommitStats, error)

	// GetCommitsByRepository returns per-repository commit aggregates.
	GetCommitsByRepository(ctx context.Context) ([]model.RepositoryCommitStats, error)

	// ListSelfMerged returns closed, merged pull requests whose author and
	// merge actor share the same external account id, created within [start, end].
	ListSelfMerged(ctx context.Context, start, end time.Time) ([]model.SelfMergedPR, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ListPullRequests returns all pull requests with authors, newest first.
func (r *repository) ListPullRequests(ctx context.Context) ([]prModel.PullRequest, error) {
	var prs []prModel.PullRequest
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&prs).Error

	if err != nil {
		r.logger.Errorw("ListPullRequests database error", "error", err)
		return nil, err
	}

	if prs == nil {
		prs = []prModel.PullRequest{}
	}
	return prs, nil
}

// GetPRSummary returns overall pull request counts.
func (r *repository) GetPRSummary(ctx context.Context) (*model.PRSummary, error) {
	var summary model.PRSummary
	err := r.db.WithContext(ctx).
		Table("pull_requests").
		Select(`
			COUNT(*) as total_prs,
			SUM(CASE WHEN state = 'open' THEN 1 ELSE 0 END) as total_open_prs,
			SUM(CASE WHEN state = 'closed' THEN 1 ELSE 0 END) as total_closed_prs,
			SUM(CASE WHEN merged THEN 1 ELSE 0 END) as total_merged_prs
		`).
		Scan(&summary).Error

	if err != nil {
		r.logger.Errorw("GetPRSummary database error", "error", err)
		return nil, err
	}

	return &summary, nil
}

// GetPRsByAuthor returns per-author pull request counts.
func (r *repository) GetPRsByAuthor(ctx context.Context) ([]model.AuthorPRStats, error) {
	var stats []model.AuthorPRStats
	err := r.db.WithContext(ctx).
		Table("pull_requests").
		Select(`
			pull_requests.author_id,
			users.github_id,
			users.login,
			COUNT(*) as total_prs,
			SUM(CASE WHEN pull_requests.merged THEN 1 ELSE 0 END) as merged_prs,
			SUM(CASE WHEN pull_requests.state = 'closed' THEN 1 ELSE 0 END) as closed_prs
		`).
		Joins("JOIN users ON users.id = pull_requests.author_id").
		Group("pull_requests.author_id, users.github_id, users.login").
		Order("total_prs DESC, users.login ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetPRsByAuthor database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.AuthorPRStats{}
	}
	return stats, nil
}

// GetPRsByRepository returns per-repository pull request counts.
func (r *repository) GetPRsByRepository(ctx context.Context) ([]model.RepositoryPRStats, error) {
	var stats []model.RepositoryPRStats
	err := r.db.WithContext(ctx).
		Table("pull_requests").
		Select(`
			repo_full_name,
			COUNT(*) as total_prs,
			SUM(CASE WHEN state = 'open' THEN 1 ELSE 0 END) as open_prs,
			SUM(CASE WHEN state = 'closed' THEN 1 ELSE 0 END) as closed_prs,
			SUM(CASE WHEN merged THEN 1 ELSE 0 END) as merged_prs
		`).
		Group("repo_full_name").
		Order("total_prs DESC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetPRsByRepository database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.RepositoryPRStats{}
	}
	return stats, nil
}

// ListPRsByState returns pull requests in a state created within [start, end].
func (r *repository) ListPRsByState(
	ctx context.Context,
	state string,
	start, end time.Time,
) ([]prModel.PullRequest, error) {
	var prs []prModel.PullRequest
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("state = ? AND created_at BETWEEN ? AND ?", state, start, end).
		Order("repo_full_name ASC, created_at DESC").
		Find(&prs).Error

	if err != nil {
		r.logger.Errorw("ListPRsByState database error", "state", state, "error", err)
		return nil, err
	}

	if prs == nil {
		prs = []prModel.PullRequest{}
	}
	return prs, nil
}

// ListCommits returns commits committed within [start, end].
func (r *repository) ListCommits(ctx context.Context, start, end time.Time) ([]commitModel.Commit, error) {
	var commits []commitModel.Commit
	err := r.db.WithContext(ctx).
		Where("committed_at BETWEEN ? AND ?", start, end).
		Order("repo_full_name ASC, committed_at DESC").
		Find(&commits).Error

	if err != nil {
		r.logger.Errorw("ListCommits database error", "error", err)
		return nil, err
	}

	if commits == nil {
		commits = []commitModel.Commit{}
	}
	return commits, nil
}

// GetCommitSummary returns overall commit counts.
func (r *repository) GetCommitSummary(ctx context.Context) (*model.CommitSummary, error) {
	var summary model.CommitSummary
	err := r.db.WithContext(ctx).
		Table("commits").
		Select(`
			COUNT(*) as total_commits,
			COUNT(DISTINCT author_id) as total_authors
		`).
		Scan(&summary).Error

	if err != nil {
		r.logger.Errorw("GetCommitSummary database error", "error", err)
		return nil, err
	}

	return &summary, nil
}

// GetCommitsByAuthor returns per-author commit aggregates.
func (r *repository) GetCommitsByAuthor(ctx context.Context) ([]model.AuthorCommitStats, error) {
	var stats []model.AuthorCommitStats
	err := r.db.WithContext(ctx).
		Table("commits").
		Select(`
			commits.author_id,
			users.github_id,
			users.login,
			COUNT(*) as total_commits,
			SUM(commits.additions) as total_additions,
			SUM(commits.deletions) as total_deletions
		`).
		Joins("JOIN users ON users.id = commits.author_id").
		Group("commits.author_id, users.github_id, users.login").
		Order("total_commits DESC, users.login ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetCommitsByAuthor database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.AuthorCommitStats{}
	}
	return stats, nil
}

// GetCommitsByRepository returns per-repository commit aggregates.
func (r *repository) GetCommitsByRepository(ctx context.Context) ([]model.RepositoryCommitStats, error) {
	var stats []model.RepositoryCommitStats
	err := r.db.WithContext(ctx).
		Table("commits").
		Select(`
			repo_full_name,
			COUNT(*) as total_commits,
			SUM(additions) as total_additions,
			SUM(deletions) as total_deletions,
			COUNT(DISTINCT branch) as branches
		`).
		Group("repo_full_name").
		Order("total_commits DESC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetCommitsByRepository database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.RepositoryCommitStats{}
	}
	return stats, nil
}

// ListSelfMerged returns self-merged pull requests within [start, end].
// The predicate compares the external account ids of author and merge
// actor, not the internal row ids.
func (r *repository) ListSelfMerged(
	ctx context.Context,
	start, end time.Time,
) ([]model.SelfMergedPR, error) {
	var prs []model.SelfMergedPR
	err := r.db.WithContext(ctx).
		Table("pull_requests").
		Select(`
			pull_requests.pr_number,
			pull_requests.title,
			pull_requests.html_url,
			pull_requests.repo_full_name,
			pull_requests.created_at,
			pull_requests.merged_at,
			authors.github_id,
			authors.login
		`).
		Joins("JOIN users authors ON authors.id = pull_requests.author_id").
		Joins("JOIN users mergers ON mergers.id = pull_requests.merged_by_id").
		Where("pull_requests.state = ? AND pull_requests.merged = ?", prModel.StateClosed, true).
		Where("authors.github_id = mergers.github_id").
		Where("pull_requests.created_at BETWEEN ? AND ?", start, end).
		Order("authors.login ASC, pull_requests.created_at DESC").
		Scan(&prs).Error

	if err != nil {
		r.logger.Errorw("ListSelfMerged database error", "error", err)
		return nil, err
	}

	if prs == nil {
		prs = []model.SelfMergedPR{}
	}
	return prs, nil
}
