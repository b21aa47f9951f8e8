// Package theme keeps the light/dark preference of one visitor.
package theme

import (
	"context"
	"errors"
	"sync"

	"github.com/rogerio-castellano/storefront/internal/models"
	"github.com/rogerio-castellano/storefront/internal/repo"
)

type Store struct {
	mu    sync.Mutex
	repo  repo.KeyValueRepository
	key   string
	theme models.Theme
}

func NewStore(r repo.KeyValueRepository, key string) *Store {
	return &Store{repo: r, key: key, theme: models.ThemeLight}
}

// Init reads the persisted preference. Missing or unknown values mean light.
func (s *Store) Init(ctx context.Context) error {
	v, err := s.repo.Get(ctx, s.key)
	if err != nil && !errors.Is(err, repo.ErrKeyNotFound) {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if models.Theme(v) == models.ThemeDark {
		s.theme = models.ThemeDark
	} else {
		s.theme = models.ThemeLight
	}
	return nil
}

func (s *Store) Current() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Toggle flips the preference and persists it.
func (s *Store) Toggle(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.theme.Toggled()
	if err := s.repo.Set(ctx, s.key, []byte(next)); err != nil {
		return s.theme, err
	}
	s.theme = next
	return next, nil
}
