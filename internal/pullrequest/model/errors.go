package model

import "errors"

var (
	// ErrPullRequestNotFound indicates that no record exists for the natural key.
	ErrPullRequestNotFound = errors.New("pull request not found")
	// ErrPullRequestExists indicates an insert hit the natural key uniqueness constraint.
	ErrPullRequestExists = errors.New("pull request already exists")
)
