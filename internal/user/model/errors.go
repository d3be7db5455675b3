package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyAccount indicates that an account reference carries neither an id nor a login.
	ErrEmptyAccount = errors.New("account reference has no id and no login")
)
