// Package cache holds rendered pages for a short time.
//
// Entries only leave the cache by expiring or by an explicit Clear; writes to
// the underlying data never invalidate them, so readers may observe a page up
// to one TTL old.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
	TTL() time.Duration
}

type nop struct{}

// Nop never stores anything; every Get is a miss.
func Nop() Cache {
	return nop{}
}

func (nop) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

func (nop) Set(ctx context.Context, key string, value []byte) error {
	return nil
}

func (nop) Clear(ctx context.Context) error {
	return nil
}

func (nop) TTL() time.Duration {
	return 0
}
