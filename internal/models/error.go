package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Registration errors
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Careers errors
	ErrUnsupportedFileType = errors.New("unsupported resume file type")

	// Password reset state errors
	ErrOTPInvalid     = errors.New("invalid or unknown otp")
	ErrOTPExpired     = errors.New("otp expired")
	ErrOTPNotVerified = errors.New("otp not verified")
)
