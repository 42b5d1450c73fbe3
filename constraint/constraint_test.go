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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/reflequiv/equiv"
	"dirpx.dev/reflequiv/exporter"
	"dirpx.dev/reflequiv/metainfo"
	"dirpx.dev/reflequiv/reflection"
	"dirpx.dev/reflequiv/transform"
)

// parsedClass stands in for a class reflector built by the static parser.
type parsedClass struct{ name string }

func (parsedClass) ClassName() string  { return `Go\ParserReflection\ReflectionClass` }
func (p parsedClass) GetName() string { return p.name }

func lines(ls ...string) string { return strings.Join(ls, "\n") }

func TestString(t *testing.T) {
	prev := reflection.NewError("Exception", "Testing...", 7, nil)
	refEx := reflection.NewException("Error calling ReflectionClassConstant::methodName() do re mi", 42, prev)
	cc := reflection.NewClassConstant("DateTime", "ATOM")

	tests := []struct {
		name  string
		value any
		tr    *transform.Transformer
		typ   string
		want  string
	}{
		{
			name:  "array serialization",
			value: []int{1, 2, 3},
			typ:   Identical,
			want:  lines("Array &0 (", "    0 => 1", "    1 => 2", "    2 => 3", ")"),
		},
		{
			name:  "transformer on string",
			value: "fee figh foo fum",
			tr:    transform.MustNew(transform.Pairs(`foo`, `bar`)...),
			typ:   Identical,
			want:  "'fee figh bar fum'",
		},
		{
			name:  "reflection class",
			value: reflection.NewClass("DateTime"),
			typ:   Equivalent,
			want:  lines(`Go\ParserReflection\ReflectionClass Object &0 (`, `    'name' => 'DateTime'`, `)`),
		},
		{
			name:  "reflection exception in an array",
			value: exporter.NewArray().Set("foo", refEx).Set("bar", "abcde"),
			typ:   Equivalent,
			want: lines(
				`Array &0 (`,
				`    'foo' => Go\ParserReflection\ReflectionException Object &1 (`,
				`        'message' => 'Error calling Go\ParserReflection\ReflectionClassConstant::methodName() do re mi'`,
				`        'code' => 42`,
				`        'previous' => Exception Object &2 (`,
				`            'message' => 'Testing...'`,
				`            'code' => 7`,
				`        )`,
				`    )`,
				`    'bar' => 'abcde'`,
				`)`,
			),
		},
		{
			name:  "reflection exception without optional arguments",
			value: reflection.NewException("Testing abc123 bar", 0, nil),
			tr:    transform.MustNew(transform.Pairs(`abc123`, `foo`)...),
			typ:   Equivalent,
			want:  lines(`Go\ParserReflection\ReflectionException Object &0 (`, `    'message' => 'Testing foo bar'`, `)`),
		},
		{
			name:  "class constant more than once",
			value: []any{cc, cc},
			typ:   Equivalent,
			want: lines(
				`Array &0 (`,
				`    0 => Go\ParserReflection\ReflectionClassConstant Object &1 (`,
				`        'class' => 'DateTime'`,
				`        'name' => 'ATOM'`,
				`    )`,
				`    1 => Go\ParserReflection\ReflectionClassConstant Object &1`,
				`)`,
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.value, WithTransformer(tt.tr))
			require.NoError(t, err)
			assert.Equal(t, tt.typ, c.ComparisonType())
			assert.Equal(t, fmt.Sprintf("is %s to %s", tt.typ, tt.want), c.String())
		})
	}
}

func TestNewRequiresIdempotence(t *testing.T) {
	_, err := New("el foo goo", WithTransformer(transform.MustNew(transform.Pairs(`foo`, `foo foo`)...)))
	require.ErrorIs(t, err, equiv.ErrNotIdempotent)

	c, err := New("", WithTransformer(transform.MustNew()))
	require.NoError(t, err)
	assert.Equal(t, "", c.Value())
}

func TestComparisonType(t *testing.T) {
	meta := metainfo.New()
	self := exporter.NewArray()
	self.Set("self", self)
	shared := []any{1, 2, reflection.NewClass("DateTime")}
	loop := []any{1, nil}
	loop[1] = loop

	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, Identical},
		{"scalar", 1, Identical},
		{"struct", struct{ A int }{1}, Identical},
		{"self array", self, Identical},
		{"reflector", reflection.NewMethod("A", "b"), Equivalent},
		{"error", errors.New("x"), Equivalent},
		{"nested in map", map[string]any{"a": []any{1, reflection.NewClass("A")}}, Equivalent},
		{"nested in array", exporter.List(1, exporter.List(errors.New("x"))), Equivalent},
		{"go array", [2]any{1, parsedClass{}}, Equivalent},
		{"subslice before parent", []any{shared[:1], shared}, Equivalent},
		{"same slice twice", []any{shared, shared}, Equivalent},
		{"self slice", loop, Identical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComparisonType(tt.v, meta))
		})
	}
}

func TestMatches(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		c, err := New([]int{1, 2, 3})
		require.NoError(t, err)

		ok, err := c.Matches([]int{1, 2, 3})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Matches([]int{1, 2})
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = c.Matches([]int64{1, 2, 3})
		require.NoError(t, err)
		assert.False(t, ok, "types must match")
	})

	t.Run("identical with transformer", func(t *testing.T) {
		c, err := New("fee figh foo fum", WithTransformer(transform.MustNew(transform.Pairs(`foo`, `bar`)...)))
		require.NoError(t, err)

		ok, err := c.Matches("fee figh bar fum")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("equivalent", func(t *testing.T) {
		c, err := New(reflection.NewClass("DateTime"))
		require.NoError(t, err)

		ok, err := c.Matches(parsedClass{name: "DateTime"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Matches(parsedClass{name: "DateTimeImmutable"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unexportable actual", func(t *testing.T) {
		c, err := New(reflection.NewParameter(reflection.NewFunction("strlen"), "s"))
		require.NoError(t, err)

		fn := reflection.NewClosure(func() {}, reflection.Source{})
		_, err = c.Matches(reflection.NewParameter(fn, "s"))
		require.ErrorIs(t, err, equiv.ErrUnresolvedValue)
	})
}

func TestFailureDescription(t *testing.T) {
	c, err := New(reflection.NewClass("DateTime"))
	require.NoError(t, err)

	desc := c.FailureDescription(parsedClass{name: "Foo"})
	assert.True(t, strings.HasPrefix(desc, `Failed asserting that Go\ParserReflection\ReflectionClass Object &0 (`), desc)
	assert.Contains(t, desc, "is equivalent to ")
	assert.Contains(t, desc, "--- Expected\n+++ Actual\n")
	assert.Contains(t, desc, "\n-    'name' => 'DateTime'\n")
	assert.Contains(t, desc, "\n+    'name' => 'Foo'\n")
	assert.NotContains(t, desc, "\x1b[")

	colored, err := New(reflection.NewClass("DateTime"), WithColor(true))
	require.NoError(t, err)
	assert.Contains(t, colored.FailureDescription(parsedClass{name: "Foo"}), "\x1b[31m")
}

func TestStaticClassNames(t *testing.T) {
	got, err := ParsedClass(`\ReflectionProperty`)
	require.NoError(t, err)
	assert.Equal(t, `\Go\ParserReflection\ReflectionProperty`, got)

	got, err = NativeClass(`Go\ParserReflection\Reflector`)
	require.NoError(t, err)
	assert.Equal(t, "Reflector", got)

	_, err = NativeClass("Reflector")
	assert.EqualError(t, err, "Reflector not a parsed Reflection class.")

	assert.Equal(t, "Four score and seven years ago...", ReplaceNativeClasses("Four score and seven years ago..."))
	assert.Equal(t, `a ReflectionType b`, ReplaceParsedClasses(`a Go\ParserReflection\ReflectionType b`))
}
