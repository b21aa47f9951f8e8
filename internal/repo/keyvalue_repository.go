package repo

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueRepository stores opaque blobs under string keys. It stands in for
// the browser's local storage: one key per session and concern.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Watcher is implemented by repositories that can report writes to a key,
// including writes made by other processes sharing the same backend.
// fn runs on its own goroutine and may fire for the caller's own writes.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func()) (stop func(), err error)
}

// CartKey and ThemeKey name the per-session keys.
func CartKey(session string) string  { return "cart:" + session }
func ThemeKey(session string) string { return "theme:" + session }
