package redis

import "errors"

var (
	// ErrNilConfig config is nil
	ErrNilConfig = errors.New("redis: config is nil")

	// ErrInvalidConfig required connection fields are missing
	ErrInvalidConfig = errors.New("redis: invalid config")

	// ErrNil key does not exist
	ErrNil = errors.New("redis: nil")
)
