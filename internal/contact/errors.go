package contact

import "errors"

var (
	ErrNotFound  = errors.New("contact not found")
	ErrInvalidID = errors.New("invalid contact id")
)
