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

package constraint

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/reflequiv/reflection"
	"dirpx.dev/reflequiv/transform"
)

type mockT struct {
	failed bool
	halted bool
	msg    string
}

func (m *mockT) Errorf(format string, args ...any) {
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockT) FailNow() { m.halted = true }

func (m *mockT) Helper() {}

func TestAssertReflectorValueSame(t *testing.T) {
	native := reflection.NewClass("DateTime")

	m := new(mockT)
	assert.True(t, AssertReflectorValueSame(m, native, parsedClass{name: "DateTime"}, nil))
	assert.False(t, m.failed)

	m = new(mockT)
	assert.False(t, AssertReflectorValueSame(m, native, parsedClass{name: "Foo"}, nil, "getName() for %s", "DateTime"))
	assert.True(t, m.failed)
	assert.Contains(t, m.msg, "getName() for DateTime")
	assert.Contains(t, m.msg, "+    'name' => 'Foo'")

	m = new(mockT)
	tr := transform.MustNew(transform.Pairs(`\d+`, `N`)...)
	assert.True(t, AssertReflectorValueSame(m, "line 12", "line 7", tr))

	m = new(mockT)
	assert.False(t, AssertReflectorValueSame(m, "a", "a", transform.MustNew(transform.Pairs(`a`, `aa`)...)))
	assert.Contains(t, m.msg, "Cannot export expected value")
}

func TestRequireReflectorValueSame(t *testing.T) {
	m := new(mockT)
	RequireReflectorValueSame(m, 1, 1, nil)
	assert.False(t, m.halted)

	RequireReflectorValueSame(m, 1, 2, nil)
	assert.True(t, m.halted)
}
