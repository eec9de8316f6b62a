package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoActiveSession indicates no bulk sync session is currently running.
	// This is an expected state for an idle driver, not a failure.
	ErrNoActiveSession = errors.New("no active sync session")

	// ErrSyncInProgress indicates another caller holds the batch lock
	ErrSyncInProgress = errors.New("sync batch already in progress")

	// ErrEmbedding indicates the embedding backend failed or returned a malformed vector
	ErrEmbedding = errors.New("embedding failed")

	// ErrVectorStore indicates a vector store transport or backend failure
	ErrVectorStore = errors.New("vector store failure")

	// ErrConfig indicates required configuration is missing or invalid
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidProvider indicates an unknown embedding provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
