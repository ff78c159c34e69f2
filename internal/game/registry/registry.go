// Package registry provides keyed selection tables shared by the content
// subsystems: single-valued tables that fall back to a designated key on a
// miss, and multi-valued tables that pick uniformly among a key's values.
package registry

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/baggoblin/baggoblin/internal/game/dice"
)

// ErrFallbackMissing is returned when both the requested key and the fallback
// key are absent. Callers treat it as a fatal configuration error.
var ErrFallbackMissing = errors.New("registry: fallback value missing")

// Single maps each key to exactly one value.
//
// Invariant: a later Put for the same key replaces the earlier value.
type Single[K comparable, V any] struct {
	name     string
	fallback K
	values   map[K]V
	logger   *zap.Logger
}

// NewSingle returns an empty Single table whose misses resolve to fallback.
//
// Precondition: name identifies the table in log output. A nil logger disables miss reporting.
func NewSingle[K comparable, V any](name string, fallback K, logger *zap.Logger) *Single[K, V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Single[K, V]{
		name:     name,
		fallback: fallback,
		values:   make(map[K]V),
		logger:   logger,
	}
}

// Put registers v under k.
func (s *Single[K, V]) Put(k K, v V) {
	s.values[k] = v
}

// Get returns the value registered under k. On a miss the miss is logged at
// error level and the fallback key's value is returned instead.
//
// Postcondition: err wraps ErrFallbackMissing iff neither k nor the fallback key is registered.
func (s *Single[K, V]) Get(k K) (V, error) {
	if v, ok := s.values[k]; ok {
		return v, nil
	}
	s.logger.Error("registry miss, using fallback",
		zap.String("registry", s.name),
		zap.Any("key", k),
		zap.Any("fallback", s.fallback),
	)
	if v, ok := s.values[s.fallback]; ok {
		return v, nil
	}
	var zero V
	return zero, fmt.Errorf("%s: key %v: %w", s.name, k, ErrFallbackMissing)
}

// Len returns the number of registered keys.
func (s *Single[K, V]) Len() int {
	return len(s.values)
}

// Multi maps each key to any number of values and picks among them at random.
type Multi[K comparable, V any] struct {
	name   string
	values map[K][]V
	src    dice.Source
	logger *zap.Logger
}

// NewMulti returns an empty Multi table that picks with src.
//
// Precondition: src must be non-nil. A nil logger disables miss reporting.
func NewMulti[K comparable, V any](name string, src dice.Source, logger *zap.Logger) *Multi[K, V] {
	if src == nil {
		panic("registry: NewMulti precondition violated: src must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Multi[K, V]{
		name:   name,
		values: make(map[K][]V),
		src:    src,
		logger: logger,
	}
}

// Put appends v to the values registered under k.
//
// Postcondition: Len(k) increases by one; insertion order is kept for At.
func (m *Multi[K, V]) Put(k K, v V) {
	m.values[k] = append(m.values[k], v)
}

// Len returns the number of values registered under k.
func (m *Multi[K, V]) Len(k K) int {
	return len(m.values[k])
}

// At returns the i-th value registered under k.
//
// Postcondition: ok is false when k has fewer than i+1 values or i is negative.
func (m *Multi[K, V]) At(k K, i int) (V, bool) {
	vs := m.values[k]
	if i < 0 || i >= len(vs) {
		var zero V
		return zero, false
	}
	return vs[i], true
}

// Pick returns one of the values registered under k, chosen uniformly at random.
// A key with no values is logged at error level and reported with ok == false.
func (m *Multi[K, V]) Pick(k K) (V, bool) {
	vs := m.values[k]
	if len(vs) == 0 {
		m.logger.Error("registry has no values for key",
			zap.String("registry", m.name),
			zap.Any("key", k),
		)
		var zero V
		return zero, false
	}
	if len(vs) == 1 {
		return vs[0], true
	}
	return vs[m.src.Intn(len(vs))], true
}
