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

package builder

import (
	"github.com/botobag/gqlcore/graphql"
)

// TypeCache memoizes named types by name during one build or extend pass. Lookups of a name that
// has been set must return the identical instance. Implementations need not be safe for concurrent
// use and a cache must not be given to two passes running at the same time.
type TypeCache interface {
	// Has returns true if a type has been stored for the name.
	Has(name string) bool

	// Get returns the type stored for the name or nil if no type is present.
	Get(name string) graphql.NamedType

	// Set stores the type under the name, replacing any previous entry.
	Set(name string, t graphql.NamedType)

	// Delete removes the entry for the name.
	Delete(name string)

	// Clear resets the cache.
	Clear()
}

// mapTypeCache is the TypeCache returned by NewTypeCache.
type mapTypeCache struct {
	types map[string]graphql.NamedType
}

var _ TypeCache = (*mapTypeCache)(nil)

// NewTypeCache creates a map-backed TypeCache.
func NewTypeCache() TypeCache {
	return &mapTypeCache{
		types: map[string]graphql.NamedType{},
	}
}

// Has implements TypeCache.
func (cache *mapTypeCache) Has(name string) bool {
	_, exists := cache.types[name]
	return exists
}

// Get implements TypeCache.
func (cache *mapTypeCache) Get(name string) graphql.NamedType {
	return cache.types[name]
}

// Set implements TypeCache.
func (cache *mapTypeCache) Set(name string, t graphql.NamedType) {
	cache.types[name] = t
}

// Delete implements TypeCache.
func (cache *mapTypeCache) Delete(name string) {
	delete(cache.types, name)
}

// Clear implements TypeCache.
func (cache *mapTypeCache) Clear() {
	for name := range cache.types {
		delete(cache.types, name)
	}
}
