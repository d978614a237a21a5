package memdex

import "errors"

var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrKeyEmpty     = errors.New("key cannot be empty")
	ErrInvalidOrder = errors.New("order must be at least 2")
	ErrInvalidRange = errors.New("invalid range bounds")
)
