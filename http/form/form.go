package form

import (
	"iter"
	"slices"
)

type Data struct {
	Name  string
	Value string
}

// Form holds decoded application/x-www-form-urlencoded entries in order of their appearance.
// A name met once is a scalar, a name met multiple times is a sequence of values. Nothing
// is ever overwritten.
type Form []Data

// Name returns the first Data matching the name.
func (f Form) Name(name string) (Data, bool) {
	for data := range f.Names(name) {
		return data, true
	}

	return Data{}, false
}

// Names returns an iterator over all Data matching the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}

// Get returns the first value of the name.
func (f Form) Get(name string) (string, bool) {
	data, found := f.Name(name)
	return data.Value, found
}

// Values returns all the values of the name. Nil is returned if there are none.
func (f Form) Values(name string) (values []string) {
	for data := range f.Names(name) {
		values = append(values, data.Value)
	}

	return values
}

// IsMulti tells whether the name carries a sequence of values rather than a scalar.
func (f Form) IsMulti(name string) bool {
	n := 0
	for range f.Names(name) {
		if n++; n > 1 {
			return true
		}
	}

	return false
}

// Keys returns unique names in order of their first appearance.
func (f Form) Keys() (keys []string) {
	for _, entry := range f {
		if !slices.Contains(keys, entry.Name) {
			keys = append(keys, entry.Name)
		}
	}

	return keys
}

// Map converts the form into a map, where scalars are represented by a string and
// sequences by a []string.
func (f Form) Map() map[string]any {
	m := make(map[string]any, len(f))

	for _, key := range f.Keys() {
		if values := f.Values(key); len(values) > 1 {
			m[key] = values
		} else {
			m[key] = values[0]
		}
	}

	return m
}
