package plugin

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var ErrNoService = errors.New("service not registered")

// Services is a named registry plugins use to share objects.
type Services struct {
	mu sync.RWMutex
	m  map[string]any
}

func NewServices() *Services {
	return &Services{m: make(map[string]any)}
}

func (s *Services) Register(name string, svc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; ok {
		return errors.Errorf("service %s already registered", name)
	}
	s.m[name] = svc
	return nil
}

func (s *Services) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.m[name]
	return svc, ok
}

func (s *Services) Unregister(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[name]
	delete(s.m, name)
	return ok
}

// Names returns the registered names, sorted.
func (s *Services) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup fetches a service and asserts its type.
func Lookup[T any](s *Services, name string) (T, error) {
	var zero T
	svc, ok := s.Get(name)
	if !ok {
		return zero, errors.Wrap(ErrNoService, name)
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, errors.Errorf("service %s: type mismatch, got %T", name, svc)
	}
	return typed, nil
}
