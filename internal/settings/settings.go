package settings

import (
	"sort"
	"strings"
	"sync"
)

// KeyDelimiter separates the segments of a hierarchical key such as
// "Logging:LogLevel:Default".
const KeyDelimiter = ":"

// Source is a read-only key-value view over application settings.
// Lookup reports whether the key is present; a present key may hold an empty string.
type Source interface {
	Lookup(key string) (string, bool)
}

// MemorySource keeps settings in-memory and guards access with a RWMutex.
// Keys are matched case-insensitively.
type MemorySource struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySource initialises a source with a copy of the provided values.
func NewMemorySource(values map[string]string) *MemorySource {
	s := &MemorySource{
		values: make(map[string]string, len(values)),
	}
	for k, v := range values {
		s.values[normalizeKey(k)] = v
	}
	return s
}

// Lookup returns the value stored under key.
func (s *MemorySource) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[normalizeKey(key)]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *MemorySource) Set(key, value string) {
	s.mu.Lock()
	s.values[normalizeKey(key)] = value
	s.mu.Unlock()
}

// Keys returns the normalised keys in sorted order.
func (s *MemorySource) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of stored keys.
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Chain layers several sources. Later sources take precedence over earlier ones.
type Chain []Source

// Lookup walks the chain from the last source to the first.
func (c Chain) Lookup(key string) (string, bool) {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i] == nil {
			continue
		}
		if v, ok := c[i].Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Join builds a hierarchical key from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, KeyDelimiter)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
