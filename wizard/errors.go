package wizard

import "errors"

var (
	ErrUnknownStep             = errors.New("unknown step")
	ErrUnknownField            = errors.New("unknown field")
	ErrInvalidValue            = errors.New("invalid value")
	ErrPaidUpExceedsAuthorized = errors.New("paid-up capital cannot exceed authorized capital")
	ErrDirectorIndex           = errors.New("director index out of range")
	ErrNoDirectors             = errors.New("registration type has no directors")
	ErrFileTooLarge            = errors.New("file exceeds upload size limit")
	ErrFileType                = errors.New("file type not allowed")
	ErrBadDataURL              = errors.New("malformed data url")
)
