package model

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserInactive  = errors.New("user account is blocked")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUserHasOrders = errors.New("user has orders and cannot be deleted")
)
