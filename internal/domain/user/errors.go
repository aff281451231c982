package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already taken")
	ErrUserInactive            = errors.New("user account is deactivated")
	ErrCannotDeactivateSelf    = errors.New("you cannot deactivate your own account")
	ErrCannotDemoteSelf        = errors.New("you cannot change your own role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
