// Package service provides business logic layer for the user module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/minhtri0795/github-dashboard-server/internal/timewindow"
	"github.com/minhtri0795/github-dashboard-server/internal/user/model"
	"github.com/minhtri0795/github-dashboard-server/internal/user/repository"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// Resolve maps an account reference to a stable internal user,
	// creating one on first sight.
	Resolve(ctx context.Context, account model.Account) (*model.User, error)

	// GetUsers returns users first seen within the given window.
	GetUsers(ctx context.Context, start, end *time.Time) (*model.UsersResponse, error)

	// GetUserByLogin returns a user with contribution counts for the given window.
	GetUserByLogin(ctx context.Context, login string, start, end *time.Time) (*model.UserDetailResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Resolve maps an account reference to a stable internal user.
func (s *service) Resolve(ctx context.Context, account model.Account) (*model.User, error) {
	return s.repo.FindOrCreate(ctx, account)
}

// GetUsers returns users first seen within the given window.
func (s *service) GetUsers(ctx context.Context, start, end *time.Time) (*model.UsersResponse, error) {
	from, to := timewindow.Resolve(start, end)

	users, err := s.repo.List(ctx, from, to)
	if err != nil {
		s.logger.Errorw("GetUsers failed", "error", err)
		return nil, err
	}

	return &model.UsersResponse{
		Users: users,
		Total: len(users),
	}, nil
}

// GetUserByLogin returns a user with contribution counts for the given window.
func (s *service) GetUserByLogin(
	ctx context.Context,
	login string,
	start, end *time.Time,
) (*model.UserDetailResponse, error) {
	if login == "" {
		return nil, model.ErrUserNotFound
	}

	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	from, to := timewindow.Resolve(start, end)
	prs, commits, err := s.repo.CountContributions(ctx, user.ID, from, to)
	if err != nil {
		s.logger.Errorw("GetUserByLogin contribution counts failed", "login", login, "error", err)
		return nil, err
	}

	return &model.UserDetailResponse{
		User:         *user,
		PullRequests: prs,
		Commits:      commits,
	}, nil
}
