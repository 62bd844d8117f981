package model

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotFound         = errors.New("not found")
)
