package application

import "errors"

var (
	// ErrEmailTaken rejects a registration whose email already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
