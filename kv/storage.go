package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case. Insertion order is preserved.
type Storage struct {
	pairs []Pair
	eq    func(a, b string) bool
}

// New returns a storage with case-insensitive keys, as HTTP header fields are.
func New() *Storage {
	return NewPrealloc(0)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
		eq:    strcomp.EqualFold,
	}
}

// NewStrict returns a storage comparing keys byte-by-byte. Used for query parameters.
func NewStrict(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
		eq:    equal,
	}
}

// Add appends a new pair of key and value, keeping the existing ones.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set replaces all the pairs under the key with a single new one. The pair takes the place
// of the first replaced entry, so the order of keys stays stable. If there was no such key,
// the pair is appended.
func (s *Storage) Set(key, value string) *Storage {
	for i, pair := range s.pairs {
		if s.eq(pair.Key, key) {
			s.pairs[i] = Pair{Key: key, Value: value}
			s.pairs = append(s.pairs[:i+1], s.without(s.pairs[i+1:], key)...)
			return s
		}
	}

	return s.Add(key, value)
}

// Delete removes all the pairs under the key.
func (s *Storage) Delete(key string) *Storage {
	s.pairs = s.without(s.pairs, key)
	return s
}

func (s *Storage) without(pairs []Pair, key string) []Pair {
	n := 0

	for _, pair := range pairs {
		if !s.eq(pair.Key, key) {
			pairs[n] = pair
			n++
		}
	}

	return pairs[:n]
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if s.eq(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns an iterator over all the values stored under the key.
func (s *Storage) Values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, pair := range s.pairs {
			if s.eq(pair.Key, key) && !yield(pair.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over unique keys, in order of their first appearance.
func (s *Storage) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, pair := range s.pairs {
			if s.seen(s.pairs[:i], pair.Key) {
				continue
			}

			if !yield(pair.Key) {
				return
			}
		}
	}
}

func (s *Storage) seen(pairs []Pair, key string) bool {
	for _, pair := range pairs {
		if s.eq(pair.Key, key) {
			return true
		}
	}

	return false
}

// Pairs returns an iterator over all the pairs in insertion order.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: append([]Pair(nil), s.pairs...),
		eq:    s.eq,
	}
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func equal(a, b string) bool {
	return a == b
}
