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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/reflequiv/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultParsedNamespace, got.ParsedNamespace)
	assert.Equal(t, config.DefaultExceptionClass, got.ExceptionClass)
	assert.Equal(t, config.DefaultIndentWidth, got.IndentWidth)
	assert.Equal(t, config.DefaultMaxUnwrap, got.MaxUnwrap)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestWithParsedNamespace_TrimsSeparators(t *testing.T) {
	c := config.NewConfig(config.WithParsedNamespace(`\Acme\Static\`))
	assert.Equal(t, `Acme\Static`, c.ParsedNamespace)
}

func TestWithParsedNamespace_Empty_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithParsedNamespace(`\`))
	assert.Equal(t, config.DefaultParsedNamespace, c.ParsedNamespace)
}

func TestWithExceptionClass(t *testing.T) {
	c := config.NewConfig(config.WithExceptionClass("ReflectionError"))
	assert.Equal(t, "ReflectionError", c.ExceptionClass)
}

func TestWithIndentWidth(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"positive", 2, 2},
		{"zero resets", 0, config.DefaultIndentWidth},
		{"negative resets", -3, config.DefaultIndentWidth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.NewConfig(config.WithIndentWidth(tc.in))
			assert.Equal(t, tc.want, c.IndentWidth)
		})
	}
}

func TestWithMaxUnwrap(t *testing.T) {
	assert.Equal(t, 3, config.NewConfig(config.WithMaxUnwrap(3)).MaxUnwrap)
	assert.Equal(t, config.DefaultMaxUnwrap, config.NewConfig(config.WithMaxUnwrap(-1)).MaxUnwrap)
}

func TestOptions_AreAppliedInOrder(t *testing.T) {
	c := config.NewConfig(
		config.WithIndentWidth(2),
		config.WithIndentWidth(8),
	)
	assert.Equal(t, 8, c.IndentWidth)
}
