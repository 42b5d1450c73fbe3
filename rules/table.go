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

package rules

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"dirpx.dev/reflequiv/apis"
)

var (
	// ErrEmptyClass is returned when registering rules for an empty class name.
	ErrEmptyClass = errors.New("reflequiv(rules): empty class name provided")
	// ErrConflictingRegistration is returned when a class already has rules.
	ErrConflictingRegistration = errors.New("reflequiv(rules): class already registered")
	// ErrInvalidRule is returned for rules without a name or extractor.
	ErrInvalidRule = errors.New("reflequiv(rules): invalid rule")
)

// NewTable returns an empty apis.RuleTable safe for concurrent use.
func NewTable() apis.RuleTable {
	return &table{m: make(map[string][]apis.Rule)}
}

type table struct {
	mu sync.RWMutex
	m  map[string][]apis.Rule
}

var _ apis.RuleTable = (*table)(nil)

func (t *table) Register(class string, rules ...apis.Rule) error {
	if class == "" {
		return ErrEmptyClass
	}
	for i, r := range rules {
		if r.Name == "" || r.Extract == nil {
			return fmt.Errorf("%w: %s rule #%d", ErrInvalidRule, class, i)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.m[class]; ok {
		return fmt.Errorf("%w: %s", ErrConflictingRegistration, class)
	}
	t.m[class] = slices.Clone(rules)
	return nil
}

func (t *table) Lookup(class string) ([]apis.Rule, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rs, ok := t.m[class]
	return slices.Clone(rs), ok
}

func (t *table) Classes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.m))
	for c := range t.m {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (t *table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

func (t *table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.m)
}

// Copy returns a new table holding the same rules as src. It fails when
// src holds rules a table would reject.
func Copy(src apis.RuleTable) (apis.RuleTable, error) {
	dst := NewTable()
	if src == nil {
		return dst, nil
	}
	for _, c := range src.Classes() {
		rs, _ := src.Lookup(c)
		if err := dst.Register(c, rs...); err != nil {
			return nil, fmt.Errorf("copy %s: %w", c, err)
		}
	}
	return dst, nil
}
