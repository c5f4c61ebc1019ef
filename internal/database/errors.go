package database

import "errors"

var (
	ErrValidation = errors.New("invalid input")
	ErrDuplicate  = errors.New("duplicate question")
	ErrNotFound   = errors.New("not found")
)
