package cache

import "errors"

var (
	// ErrCacheMiss is returned by [GetJSON] when a key is not cached.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned by caches used after Close.
	ErrClosed = errors.New("cache closed")
)
