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
	"reflect"

	uref "dirpx.dev/reflequiv/utils/reflect"
)

// Context is the recursion state of one export call. It numbers containers
// and objects in first-visit order so repeats can be back-referenced.
//
// A Context is not safe for concurrent use; every export owns its own.
type Context struct {
	ids       map[any]int
	next      int
	detached  int
	equiv     map[int]int
	resources map[any]int
	active    map[activeKey]struct{}

	// Shorten is set while the fields of an inspectable object are being
	// exported. Errors met in that state are exported by representation.
	Shorten bool
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		ids:       make(map[any]int),
		equiv:     make(map[int]int),
		resources: make(map[any]int),
		active:    make(map[activeKey]struct{}),
	}
}

// NextID returns the id the next Add will assign.
func (c *Context) NextID() int { return c.next }

// Add assigns the next id to v. Only pointers are remembered; other values
// still consume an id but are never found by Contains.
func (c *Context) Add(v any) int {
	id := c.Fresh()
	if key, ok := uref.IdentityOf(v); ok {
		c.ids[key] = id
	}
	return id
}

// Fresh consumes the next id without registering anything.
func (c *Context) Fresh() int {
	id := c.next
	c.next++
	return id
}

// Contains returns the id v was registered under.
func (c *Context) Contains(v any) (int, bool) {
	key, ok := uref.IdentityOf(v)
	if !ok {
		return 0, false
	}
	id, ok := c.ids[key]
	return id, ok
}

// Link registers v under a detached id, which never appears in output,
// and records target as the printed id it stands for.
func (c *Context) Link(v any, target int) int {
	c.detached--
	id := c.detached
	if key, ok := uref.IdentityOf(v); ok {
		c.ids[key] = id
	}
	c.equiv[id] = target
	return id
}

// Equivalent returns the printed id recorded for id by Link.
func (c *Context) Equivalent(id int) (int, bool) {
	target, ok := c.equiv[id]
	return target, ok
}

// Resource returns the resource number of v, assigning one on first use.
// Resources are numbered from 1, independently of ids. Only channels are
// remembered.
func (c *Context) Resource(v any) int {
	if v == nil || reflect.ValueOf(v).Kind() != reflect.Chan {
		return len(c.resources) + 1
	}
	if n, ok := c.resources[v]; ok {
		return n
	}
	n := len(c.resources) + 1
	c.resources[v] = n
	return n
}

// activeKey locates a value-semantic container by its backing storage.
type activeKey struct {
	ptr uintptr
	len int
}

// enter marks a slice or map as being exported. It reports false when the
// container is already on the current path.
func (c *Context) enter(k activeKey) bool {
	if _, ok := c.active[k]; ok {
		return false
	}
	c.active[k] = struct{}{}
	return true
}

func (c *Context) leave(k activeKey) {
	delete(c.active, k)
}
