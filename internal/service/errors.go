package service

import "errors"

var (
	ErrNotOwner           = errors.New("unauthorized: resource does not belong to user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotAllowed    = errors.New("email is not on the allowlist")
	ErrParentTrashed      = errors.New("parent note is in the trash")
	ErrAlreadyTrashed     = errors.New("item is already in the trash")
	ErrNotTrashed         = errors.New("item is not in the trash")
)
