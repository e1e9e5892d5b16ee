package dao

import "errors"

var (
	// ErrDuplicate a unique constraint rejected the write.
	ErrDuplicate = errors.New("dao: duplicate record")
)
