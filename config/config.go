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

package config

import (
	"strings"

	"dirpx.dev/reflequiv/apis"
)

const (
	// DefaultParsedNamespace is the namespace of the parsed reflection classes.
	DefaultParsedNamespace = `Go\ParserReflection`
	// DefaultExceptionClass is the rule set applied to plain errors.
	DefaultExceptionClass = "ReflectionException"
	// DefaultIndentWidth matches the reference serializer output.
	DefaultIndentWidth = 4
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		ParsedNamespace: DefaultParsedNamespace,
		ExceptionClass:  DefaultExceptionClass,
		IndentWidth:     DefaultIndentWidth,
		MaxUnwrap:       DefaultMaxUnwrap,
	}
}

// Sanitize replaces zero or invalid fields of cfg with defaults.
// Components call it on configs they did not build themselves.
func Sanitize(cfg apis.Config) apis.Config {
	cfg.ParsedNamespace = strings.Trim(cfg.ParsedNamespace, `\`)
	if cfg.ParsedNamespace == "" {
		cfg.ParsedNamespace = DefaultParsedNamespace
	}
	if cfg.ExceptionClass == "" {
		cfg.ExceptionClass = DefaultExceptionClass
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = DefaultIndentWidth
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithParsedNamespace sets the ParsedNamespace option.
// Leading and trailing namespace separators are stripped.
func WithParsedNamespace(ns string) Option {
	return func(c *apis.Config) {
		c.ParsedNamespace = ns
	}
}

// WithExceptionClass sets the ExceptionClass option.
func WithExceptionClass(class string) Option {
	return func(c *apis.Config) {
		c.ExceptionClass = class
	}
}

// WithIndentWidth sets the IndentWidth option.
// A non-positive value resets to the default.
func WithIndentWidth(width int) Option {
	return func(c *apis.Config) {
		c.IndentWidth = width
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		c.MaxUnwrap = max
	}
}
