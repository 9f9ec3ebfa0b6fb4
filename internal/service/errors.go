package service

import "errors"

// ErrValidation is returned when a required field is missing or empty.
var ErrValidation = errors.New("validation failed")

// ErrInvalidUpload is returned for uploads that are not images or exceed MaxUploadSize.
var ErrInvalidUpload = errors.New("invalid upload")
