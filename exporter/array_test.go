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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray(t *testing.T) {
	a := NewArray().Set("name", "DateTime").Append("x").Set(5, "five").Append("six")

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []any{"name", 0, 5, 6}, a.Keys())

	v, ok := a.Get(int64(5))
	assert.True(t, ok)
	assert.Equal(t, "five", v)

	_, ok = a.Get("missing")
	assert.False(t, ok)

	a.Set("name", "Closure")
	v, _ = a.Get("name")
	assert.Equal(t, "Closure", v)
	assert.Equal(t, []any{"name", 0, 5, 6}, a.Keys(), "replacing keeps order")
}

func TestArrayAll(t *testing.T) {
	a := List("a", "b", "c")

	var keys, vals []any
	for k, v := range a.All() {
		keys = append(keys, k)
		vals = append(vals, v)
		if k == 1 {
			break
		}
	}
	assert.Equal(t, []any{0, 1}, keys)
	assert.Equal(t, []any{"a", "b"}, vals)
}
