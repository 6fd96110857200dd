package attendance

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid attendance status")
	ErrInvalidRole   = errors.New("invalid attendance role")

	// Write permission errors
	ErrForbiddenRole = errors.New("you are not allowed to record this attendance log")
	ErrNotSlotOwner  = errors.New("you can only record attendance for your own classes")
)
