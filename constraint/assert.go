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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/reflequiv/transform"
)

type tHelper interface {
	Helper()
}

// AssertReflectorValueSame asserts that actual, read through the parsed
// reflection, matches expected, read through native reflection. Strings are
// passed through tr first when it is not nil.
func AssertReflectorValueSame(t assert.TestingT, expected, actual any, tr *transform.Transformer, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	c, err := New(expected, WithTransformer(tr))
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("Cannot export expected value: %v", err), msgAndArgs...)
	}
	ok, err := c.Matches(actual)
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("Cannot export actual value: %v", err), msgAndArgs...)
	}
	if !ok {
		return assert.Fail(t, c.FailureDescription(actual), msgAndArgs...)
	}
	return true
}

// RequireReflectorValueSame is AssertReflectorValueSame followed by FailNow
// on failure.
func RequireReflectorValueSame(t require.TestingT, expected, actual any, tr *transform.Transformer, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertReflectorValueSame(t, expected, actual, tr, msgAndArgs...) {
		t.FailNow()
	}
}
