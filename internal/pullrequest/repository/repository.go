// Package repository provides data access layer for the pullrequest module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/pullrequest/model"
)

// Repository defines the interface for pullrequest data access operations.
type Repository interface {
	// GetByNaturalKey finds the record for (prNumber, repoFullName).
	// When duplicate rows exist for the key, the most recently updated
	// one wins, matching the retention rule of CleanupDuplicates.
	GetByNaturalKey(ctx context.Context, prNumber int, repoFullName string) (*model.PullRequest, error)

	// Create inserts a new record.
	Create(ctx context.Context, pr *model.PullRequest) error

	// Update persists all fields of an existing record.
	Update(ctx context.Context, pr *model.PullRequest) error

	// CleanupDuplicates collapses records sharing a natural key down to
	// one, keeping the most recently updated row, and returns the number
	// of rows deleted.
	CleanupDuplicates(ctx context.Context) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new pullrequest repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByNaturalKey finds the record for (prNumber, repoFullName).
func (r *repository) GetByNaturalKey(
	ctx context.Context,
	prNumber int,
	repoFullName string,
) (*model.PullRequest, error) {
	var pr model.PullRequest
	err := r.db.WithContext(ctx).
		Where("pr_number = ? AND repo_full_name = ?", prNumber, repoFullName).
		Order("updated_at DESC, id DESC").
		First(&pr).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPullRequestNotFound
		}
		r.logger.Errorw("GetByNaturalKey database error",
			"pr_number", prNumber, "repo", repoFullName, "error", err)
		return nil, err
	}

	return &pr, nil
}

// Create inserts a new record.
func (r *repository) Create(ctx context.Context, pr *model.PullRequest) error {
	err := r.db.WithContext(ctx).Create(pr).Error
	if err != nil {
		if isDuplicateError(err) {
			return model.ErrPullRequestExists
		}
		r.logger.Errorw("Create database error",
			"pr_number", pr.PRNumber, "repo", pr.RepoFullName, "error", err)
		return err
	}
	return nil
}

// Update persists all fields of an existing record.
func (r *repository) Update(ctx context.Context, pr *model.PullRequest) error {
	if err := r.db.WithContext(ctx).Save(pr).Error; err != nil {
		r.logger.Errorw("Update database error",
			"pr_number", pr.PRNumber, "repo", pr.RepoFullName, "error", err)
		return err
	}
	return nil
}

// isDuplicateError checks if an error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// CleanupDuplicates collapses records sharing a natural key down to one.
// Within a group the row with the greatest updated_at is retained; on equal
// updated_at the larger id wins. Running it again immediately finds nothing
// to delete. There is no locking against concurrent ingestion; the narrow
// race with an in-flight update is accepted.
func (r *repository) CleanupDuplicates(ctx context.Context) (int64, error) {
	var rows []model.PullRequest
	err := r.db.WithContext(ctx).
		Select("id", "pr_number", "repo_full_name", "updated_at").
		Order("pr_number ASC, repo_full_name ASC, updated_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("CleanupDuplicates scan error", "error", err)
		return 0, err
	}

	type naturalKey struct {
		number int
		repo   string
	}

	seen := make(map[naturalKey]bool, len(rows))
	var staleIDs []int64
	for _, row := range rows {
		key := naturalKey{number: row.PRNumber, repo: row.RepoFullName}
		if seen[key] {
			staleIDs = append(staleIDs, row.ID)
			continue
		}
		seen[key] = true
	}

	if len(staleIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("id IN ?", staleIDs).
		Delete(&model.PullRequest{})
	if result.Error != nil {
		r.logger.Errorw("CleanupDuplicates delete error", "error", result.Error)
		return 0, result.Error
	}

	r.logger.Infow("duplicate pull requests removed", "count", result.RowsAffected)
	return result.RowsAffected, nil
}
