// Package repository provides data access layer for the commit module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/commit/model"
)

// Repository defines the interface for commit data access operations.
type Repository interface {
	// Create persists a single commit record.
	Create(ctx context.Context, commit *model.Commit) error

	// ListByRepo returns commits for a repository, newest first.
	ListByRepo(ctx context.Context, repoFullName string) ([]model.Commit, error)

	// ListBySHA returns all records carrying the given sha. Synthetic
	// synchronize records make shas non-unique on purpose.
	ListBySHA(ctx context.Context, sha string) ([]model.Commit, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new commit repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a single commit record.
func (r *repository) Create(ctx context.Context, commit *model.Commit) error {
	if err := r.db.WithContext(ctx).Create(commit).Error; err != nil {
		r.logger.Errorw("commit insert error", "sha", commit.SHA, "repo", commit.RepoFullName, "error", err)
		return err
	}
	return nil
}

// ListByRepo returns commits for a repository, newest first.
func (r *repository) ListByRepo(ctx context.Context, repoFullName string) ([]model.Commit, error) {
	var commits []model.Commit
	err := r.db.WithContext(ctx).
		Where("repo_full_name = ?", repoFullName).
		Order("committed_at DESC").
		Find(&commits).Error

	if err != nil {
		r.logger.Errorw("ListByRepo database error", "repo", repoFullName, "error", err)
		return nil, err
	}

	if commits == nil {
		commits = []model.Commit{}
	}
	return commits, nil
}

// ListBySHA returns all records carrying the given sha.
func (r *repository) ListBySHA(ctx context.Context, sha string) ([]model.Commit, error) {
	var commits []model.Commit
	err := r.db.WithContext(ctx).
		Where("sha = ?", sha).
		Order("created_at ASC").
		Find(&commits).Error

	if err != nil {
		r.logger.Errorw("ListBySHA database error", "sha", sha, "error", err)
		return nil, err
	}

	if commits == nil {
		commits = []model.Commit{}
	}
	return commits, nil
}
