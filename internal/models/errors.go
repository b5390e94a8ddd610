package models

import (
	"errors"
)

var (
	// ErrInvalidInput covers empty texts, empty label lists and
	// mismatched vector dimensions. Checked before any provider call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCategories is returned when classification is attempted
	// before any category has been registered.
	ErrNoCategories = errors.New("no categories registered")

	// ErrMissingAPIKey means no credential was found at construction
	// time. Fatal at startup.
	ErrMissingAPIKey = errors.New("embedding API key not found")

	// ErrEmbeddingFailed wraps any failure of the external embedding
	// call (network, auth, quota, malformed response).
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)
