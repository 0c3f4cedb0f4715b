package types

import "errors"

// Key-related errors
var (
	// ErrInvalidKeyLength is returned when a decoded key is not exactly KeySize bytes
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidKeyEncoding is returned when a key string is not valid hex
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")
)
