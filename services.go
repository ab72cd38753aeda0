package assetkit

import (
	"reflect"
	"sync"
)

// ServiceProvider gives readers access to shared services (device handles,
// codecs, other managers) without global state.
type ServiceProvider interface {
	Service(key any) (any, bool)
}

// ServiceMap is a concurrency-safe ServiceProvider backed by a map.
type ServiceMap struct {
	mu       sync.RWMutex
	services map[any]any
}

// NewServiceMap creates an empty ServiceMap.
func NewServiceMap() *ServiceMap {
	return &ServiceMap{services: make(map[any]any)}
}

// Set registers v under key, replacing any previous value.
func (s *ServiceMap) Set(key, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[key] = v
}

// Service implements ServiceProvider.
func (s *ServiceMap) Service(key any) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.services[key]
	return v, ok
}

// Provide registers v under the type T.
func Provide[T any](s *ServiceMap, v T) {
	s.Set(reflect.TypeFor[T](), v)
}

// ServiceFor returns the service registered under the type T.
func ServiceFor[T any](sp ServiceProvider) (T, bool) {
	var zero T
	if sp == nil {
		return zero, false
	}
	v, ok := sp.Service(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
