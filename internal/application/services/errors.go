package services

import "errors"

var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUploadNotFound     = errors.New("upload not found")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrEmptyDocument      = errors.New("spreadsheet has no data")
)
