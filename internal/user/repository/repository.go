// Package repository provides data access layer for the user module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/minhtri0795/github-dashboard-server/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// FindOrCreate resolves an account reference to a stored user,
	// inserting a new row on first sight. Stored profile fields are
	// never refreshed on subsequent lookups.
	FindOrCreate(ctx context.Context, account model.Account) (*model.User, error)

	// GetByLogin finds a user by login.
	GetByLogin(ctx context.Context, login string) (*model.User, error)

	// List returns users first seen within [start, end], newest first.
	List(ctx context.Context, start, end time.Time) ([]model.User, error)

	// CountContributions returns the number of pull requests and commits
	// authored by the user within [start, end].
	CountContributions(ctx context.Context, userID int64, start, end time.Time) (prs int64, commits int64, err error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// FindOrCreate resolves an account reference to a stored user.
// Lookup is keyed on the external numeric id; push-event commit authors
// carry no numeric id, so those fall back to a login lookup.
func (r *repository) FindOrCreate(ctx context.Context, account model.Account) (*model.User, error) {
	login := account.EffectiveLogin()
	if account.ID == 0 && login == "" {
		return nil, model.ErrEmptyAccount
	}

	var existing model.User
	query := r.db.WithContext(ctx)
	if account.ID != 0 {
		query = query.Where("github_id = ?", account.ID)
	} else {
		query = query.Where("login = ?", login)
	}

	err := query.First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Errorw("FindOrCreate lookup error", "github_id", account.ID, "login", login, "error", err)
		return nil, err
	}

	user := model.User{
		GithubID:   account.ID,
		Login:      login,
		NodeID:     account.NodeID,
		AvatarURL:  account.AvatarURL,
		GravatarID: account.GravatarID,
		URL:        account.URL,
		HTMLURL:    account.HTMLURL,
		Type:       account.Type,
		SiteAdmin:  account.SiteAdmin,
	}
	if createErr := r.db.WithContext(ctx).Create(&user).Error; createErr != nil {
		r.logger.Errorw("FindOrCreate insert error", "github_id", account.ID, "login", login, "error", createErr)
		return nil, createErr
	}

	r.logger.Infow("user created", "id", user.ID, "github_id", user.GithubID, "login", user.Login)
	return &user, nil
}

// GetByLogin finds a user by login.
func (r *repository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("login = ?", login).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByLogin database error", "login", login, "error", err)
		return nil, err
	}

	return &user, nil
}

// List returns users first seen within [start, end], newest first.
func (r *repository) List(ctx context.Context, start, end time.Time) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&users).Error

	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}

	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// CountContributions returns PR and commit counts for a user within [start, end].
func (r *repository) CountContributions(
	ctx context.Context,
	userID int64,
	start, end time.Time,
) (int64, int64, error) {
	var prs int64
	err := r.db.WithContext(ctx).
		Table("pull_requests").
		Where("author_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Count(&prs).Error
	if err != nil {
		r.logger.Errorw("CountContributions pull request count error", "user_id", userID, "error", err)
		return 0, 0, err
	}

	var commits int64
	err = r.db.WithContext(ctx).
		Table("commits").
		Where("author_id = ? AND committed_at BETWEEN ? AND ?", userID, start, end).
		Count(&commits).Error
	if err != nil {
		r.logger.Errorw("CountContributions commit count error", "user_id", userID, "error", err)
		return 0, 0, err
	}

	return prs, commits, nil
}
