package domain

import "errors"

// Fetch errors
var (
	// ErrUnreachable means the extraction proxy could not be reached or timed out
	ErrUnreachable = errors.New("content proxy unreachable")
	// ErrEmptyContent means the proxy returned no usable text
	ErrEmptyContent = errors.New("no usable content")
)

// Generation errors, mapped from the model API's HTTP status
var (
	ErrAuthFailure    = errors.New("model auth failure")
	ErrRateLimited    = errors.New("model rate limited")
	ErrGenUnreachable = errors.New("model unreachable")
	ErrEmptyResponse  = errors.New("model returned empty response")
)
