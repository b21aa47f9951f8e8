package repo

import "sync"

// watchers is a per-key subscriber list shared by the Watcher implementations.
type watchers struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func()
}

func (w *watchers) add(key string, fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.subs == nil {
		w.subs = make(map[string]map[int]func())
	}
	if w.subs[key] == nil {
		w.subs[key] = make(map[int]func())
	}
	id := w.next
	w.next++
	w.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.subs[key], id)
			if len(w.subs[key]) == 0 {
				delete(w.subs, key)
			}
		})
	}
}

func (w *watchers) keys() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	keys := make([]string, 0, len(w.subs))
	for k := range w.subs {
		keys = append(keys, k)
	}
	return keys
}

func (w *watchers) notify(key string) {
	w.mu.Lock()
	fns := make([]func(), 0, len(w.subs[key]))
	for _, fn := range w.subs[key] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		go fn()
	}
}

func (w *watchers) empty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs) == 0
}
