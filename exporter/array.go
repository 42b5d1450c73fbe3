/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package exporter

import "iter"

// Array is an ordered key/value container with object identity: the same
// *Array occurring twice is exported once and back-referenced after.
//
// Keys are ints or strings. Insertion order is kept; setting an existing
// key replaces its value in place.
type Array struct {
	keys  []any
	vals  []any
	index map[any]int
	next  int
}

// NewArray returns an empty Array.
func NewArray() *Array {
	return &Array{index: make(map[any]int)}
}

// List returns an Array holding vals under keys 0..len(vals)-1.
func List(vals ...any) *Array {
	a := NewArray()
	for _, v := range vals {
		a.Append(v)
	}
	return a
}

// Set stores v under key.
func (a *Array) Set(key, v any) *Array {
	key = normalizeKey(key)
	if i, ok := a.index[key]; ok {
		a.vals[i] = v
		return a
	}
	a.index[key] = len(a.keys)
	a.keys = append(a.keys, key)
	a.vals = append(a.vals, v)
	if n, ok := key.(int); ok && n >= a.next {
		a.next = n + 1
	}
	return a
}

// Append stores v under the next integer key.
func (a *Array) Append(v any) *Array {
	return a.Set(a.next, v)
}

// Get returns the value stored under key.
func (a *Array) Get(key any) (any, bool) {
	i, ok := a.index[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	return a.vals[i], true
}

// Len returns the number of entries.
func (a *Array) Len() int { return len(a.keys) }

// Keys returns the keys in insertion order.
func (a *Array) Keys() []any {
	out := make([]any, len(a.keys))
	copy(out, a.keys)
	return out
}

// All iterates over entries in insertion order.
func (a *Array) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for i, k := range a.keys {
			if !yield(k, a.vals[i]) {
				return
			}
		}
	}
}

// normalizeKey folds every integer kind to int so 1 and int64(1) are the
// same key.
func normalizeKey(k any) any {
	switch n := k.(type) {
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint:
		return int(n)
	case uint64:
		return int(n)
	}
	return k
}
