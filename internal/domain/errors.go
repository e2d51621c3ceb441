package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	// (unparseable start date, non-positive iteration count)
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrQuoteAPIFailure is returned when the quote analysis API is
	// unreachable or returns an invalid response
	ErrQuoteAPIFailure = errors.New("quote API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
