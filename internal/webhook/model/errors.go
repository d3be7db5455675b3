package model

import "errors"

var (
	// ErrEmptyPayload indicates that the webhook body was null or empty.
	ErrEmptyPayload = errors.New("empty webhook payload")
	// ErrMissingPullRequest indicates a pull request event without a pull_request object.
	ErrMissingPullRequest = errors.New("pull request event is missing the pull_request object")
	// ErrMissingRepository indicates a pull request event without a repository object.
	ErrMissingRepository = errors.New("pull request event is missing the repository object")
	// ErrMissingAuthor indicates a pull request event without an author account.
	ErrMissingAuthor = errors.New("pull request event is missing the author account")
)
