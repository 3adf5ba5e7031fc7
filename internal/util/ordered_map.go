/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package util

// OrderedMap maps string keys to values and remembers the order in which keys were first added.
// The zero value is an empty map ready to use. It is not safe for concurrent writers; the type
// graph only writes to one while building and treats it as read-only afterwards.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty map with room for capacity entries.
func NewOrderedMap[V any](capacity int) OrderedMap[V] {
	return OrderedMap[V]{
		keys:   make([]string, 0, capacity),
		values: make(map[string]V, capacity),
	}
}

// Set adds or replaces the value for key. A replaced key keeps its original position. It returns
// true if the key was already present.
func (m *OrderedMap[V]) Set(key string, value V) bool {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	_, exists := m.values[key]
	if !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return exists
}

// Lookup returns the value for key and whether it was found.
func (m OrderedMap[V]) Lookup(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Get returns the value for key or the zero value if there's no such key.
func (m OrderedMap[V]) Get(key string) V {
	return m.values[key]
}

// Has returns true if the map contains key.
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns keys in insertion order. The returned slice is a copy.
func (m OrderedMap[V]) Keys() []string {
	if len(m.keys) == 0 {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns values in key insertion order.
func (m OrderedMap[V]) Values() []V {
	if len(m.keys) == 0 {
		return nil
	}
	values := make([]V, len(m.keys))
	for i, key := range m.keys {
		values[i] = m.values[key]
	}
	return values
}

// Range calls f for each entry in insertion order until f returns false.
func (m OrderedMap[V]) Range(f func(key string, value V) bool) {
	for _, key := range m.keys {
		if !f(key, m.values[key]) {
			return
		}
	}
}

// Clone returns a shallow copy that can be modified without affecting m.
func (m OrderedMap[V]) Clone() OrderedMap[V] {
	clone := NewOrderedMap[V](len(m.keys))
	for _, key := range m.keys {
		clone.Set(key, m.values[key])
	}
	return clone
}
