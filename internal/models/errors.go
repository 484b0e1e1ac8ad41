package models

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
	ErrDuplicateID  = errors.New("event id already exists")
)
