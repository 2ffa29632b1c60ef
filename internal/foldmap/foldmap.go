// Package foldmap provides maps and sets keyed by case-folded strings, used
// wherever MOF property names are looked up.
package foldmap

import (
	"golang.org/x/text/cases"
)

type entry[V any] struct {
	key   string
	value V
}

// Map is a case-insensitive map that remembers the first spelling of each key.
type Map[V any] struct {
	caser   cases.Caser
	entries map[string]entry[V]
}

func New[V any]() *Map[V] {
	return &Map[V]{
		caser:   cases.Fold(),
		entries: make(map[string]entry[V]),
	}
}

func (m *Map[V]) fold(key string) string {
	return m.caser.String(key)
}

// Set stores value under key. A later spelling of the same key replaces the
// value but keeps the original spelling.
func (m *Map[V]) Set(key string, value V) {
	k := m.fold(key)
	if e, ok := m.entries[k]; ok {
		key = e.key
	}
	m.entries[k] = entry[V]{key: key, value: value}
}

func (m *Map[V]) Get(key string) (V, bool) {
	e, ok := m.entries[m.fold(key)]
	return e.value, ok
}

func (m *Map[V]) Has(key string) bool {
	_, ok := m.entries[m.fold(key)]
	return ok
}

// Each calls fn for every entry with the key as first spelled. The order is
// unspecified.
func (m *Map[V]) Each(fn func(key string, value V)) {
	for _, e := range m.entries {
		fn(e.key, e.value)
	}
}

func (m *Map[V]) Len() int {
	return len(m.entries)
}

// Set is a case-insensitive string set.
type Set struct {
	m *Map[struct{}]
}

func NewSet(keys ...string) *Set {
	s := &Set{m: New[struct{}]()}
	for _, k := range keys {
		s.m.Set(k, struct{}{})
	}
	return s
}

func (s *Set) Has(key string) bool {
	return s.m.Has(key)
}
