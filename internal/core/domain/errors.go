package domain

import "errors"

var (
	ErrBuildingNotFound   = errors.New("building not found")
	ErrPollNotFound       = errors.New("poll not found")
	ErrUnitNotFound       = errors.New("unit not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOption      = errors.New("invalid option for this poll")
	ErrAccessDenied       = errors.New("access denied")
	ErrPollNotActive      = errors.New("poll is not active")
	ErrInvalidDateRange   = errors.New("end date cannot be before start date")
	ErrBuildingMismatch   = errors.New("poll or unit does not belong to this building")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInternal           = errors.New("internal server error")
)
