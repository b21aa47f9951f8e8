package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rogerio-castellano/storefront/internal/obs"
)

// FileKeyValueRepository keeps every key in a single JSON document on disk.
// Several processes may share the file; the last write wins.
type FileKeyValueRepository struct {
	path string
	mu   sync.Mutex

	watchers watchers
	watchMu  sync.Mutex
	fsw      *fsnotify.Watcher
	seen     map[string][]byte
}

func NewFileKeyValueRepository(path string) *FileKeyValueRepository {
	return &FileKeyValueRepository{path: path}
}

func (r *FileKeyValueRepository) load() (map[string][]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string][]byte{}, nil
		}
		return nil, err
	}
	store := map[string][]byte{}
	if len(bytes.TrimSpace(data)) == 0 {
		return store, nil
	}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.path, err)
	}
	return store, nil
}

func (r *FileKeyValueRepository) save(store map[string][]byte) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func (r *FileKeyValueRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, err := r.load()
	if err != nil {
		return nil, err
	}
	v, ok := store[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (r *FileKeyValueRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, err := r.load()
	if err != nil {
		return err
	}
	store[key] = value
	return r.save(store)
}

func (r *FileKeyValueRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := store[key]; !ok {
		return nil
	}
	delete(store, key)
	return r.save(store)
}

// Watch reports changes to key made through any writer of the file. The
// directory is watched rather than the file because saves replace it.
func (r *FileKeyValueRepository) Watch(ctx context.Context, key string, fn func()) (func(), error) {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()

	if r.fsw == nil {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(r.path)
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		r.fsw = fsw
		r.seen = map[string][]byte{}
		go r.processEvents(fsw)
	}

	if v, err := r.Get(ctx, key); err == nil {
		r.seen[key] = v
	}
	return r.watchers.add(key, fn), nil
}

func (r *FileKeyValueRepository) processEvents(fsw *fsnotify.Watcher) {
	name := filepath.Clean(r.path)
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				r.dispatch()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			obs.Logger.Warn("file repository watch error", "path", r.path, "error", err)
		}
	}
}

// dispatch notifies subscribers of keys whose value differs from the last
// value observed.
func (r *FileKeyValueRepository) dispatch() {
	r.mu.Lock()
	store, err := r.load()
	r.mu.Unlock()
	if err != nil {
		obs.Logger.Warn("file repository reload failed", "path", r.path, "error", err)
		return
	}

	r.watchMu.Lock()
	var changed []string
	for _, key := range r.watchers.keys() {
		if !bytes.Equal(r.seen[key], store[key]) {
			r.seen[key] = store[key]
			changed = append(changed, key)
		}
	}
	r.watchMu.Unlock()

	for _, key := range changed {
		r.watchers.notify(key)
	}
}

// Close stops the file watcher, if one was started.
func (r *FileKeyValueRepository) Close() error {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()
	if r.fsw == nil {
		return nil
	}
	err := r.fsw.Close()
	r.fsw = nil
	return err
}
