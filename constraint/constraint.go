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

// Package constraint asserts that a value produced by the static parser is
// equivalent to the value produced by native runtime reflection.
//
// Values holding reflection objects (or errors) are compared by their
// equivalence export, everything else by strict structural identity.
package constraint

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"

	"dirpx.dev/reflequiv/equiv"
	"dirpx.dev/reflequiv/exporter"
	"dirpx.dev/reflequiv/metainfo"
	"dirpx.dev/reflequiv/transform"
)

// Comparison types.
const (
	Identical  = "identical"
	Equivalent = "equivalent"
)

// Constraint compares values against an expected value.
type Constraint struct {
	value  any
	tr     *transform.Transformer
	exp    *equiv.Exporter
	meta   *metainfo.MetaInfo
	export string
	color  bool
}

type options struct {
	tr    *transform.Transformer
	meta  *metainfo.MetaInfo
	log   *zap.Logger
	color bool
}

// Option configures a Constraint.
type Option func(*options)

// WithTransformer filters strings on both sides before comparing.
func WithTransformer(t *transform.Transformer) Option {
	return func(o *options) { o.tr = t }
}

// WithMeta sets the MetaInfo used for class names and representations.
func WithMeta(m *metainfo.MetaInfo) Option {
	return func(o *options) { o.meta = m }
}

// WithLogger sets the logger passed to the exporter.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithColor colors the diff in failure descriptions.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// New returns a Constraint expecting value. The value is exported right
// away so an unexportable value or a bad transformer fails here.
func New(value any, opts ...Option) (*Constraint, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.meta == nil {
		o.meta = metainfo.New(metainfo.WithLogger(o.log))
	}
	exp := equiv.New(equiv.WithMeta(o.meta), equiv.WithTransformer(o.tr), equiv.WithLogger(o.log))

	out, err := exp.Export(value)
	if err != nil {
		return nil, err
	}
	return &Constraint{
		value:  value,
		tr:     o.tr,
		exp:    exp,
		meta:   o.meta,
		export: out,
		color:  o.color,
	}, nil
}

// Value returns the expected value.
func (c *Constraint) Value() any { return c.value }

// ComparisonType returns Identical or Equivalent for the expected value.
func (c *Constraint) ComparisonType() string {
	return ComparisonType(c.value, c.meta)
}

// String describes the constraint: "is <type> to <export>".
func (c *Constraint) String() string {
	return fmt.Sprintf("is %s to %s", c.ComparisonType(), c.export)
}

// Matches reports whether other satisfies the constraint.
func (c *Constraint) Matches(other any) (bool, error) {
	if c.ComparisonType() == Identical {
		return cmp.Equal(c.value, other, c.cmpOptions()...), nil
	}
	out, err := c.exp.Export(other)
	if err != nil {
		return false, err
	}
	return out == c.export, nil
}

func (c *Constraint) cmpOptions() []cmp.Option {
	opts := []cmp.Option{cmp.Exporter(func(reflect.Type) bool { return true })}
	if c.tr != nil {
		opts = append(opts, cmpopts.AcyclicTransformer("TextTransformer", func(s string) string {
			out, err := c.tr.Filter(s)
			if err != nil {
				return s
			}
			return out
		}))
	}
	return opts
}

// FailureDescription explains why other does not match, with a line diff
// of both exports.
func (c *Constraint) FailureDescription(other any) string {
	out, err := c.exp.Export(other)
	if err != nil {
		return fmt.Sprintf("Failed asserting that a value %s: export failed: %v", c, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Failed asserting that %s %s.\n", out, c)
	b.WriteString(lineDiff(c.export, out, c.color))
	return b.String()
}

// lineDiff renders a line-oriented diff of want and got.
func lineDiff(want, got string, colored bool) string {
	dmp := diffpatch.New()
	a, b, table := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	if colored {
		red.EnableColor()
		green.EnableColor()
	} else {
		red.DisableColor()
		green.DisableColor()
	}

	var buf strings.Builder
	buf.WriteString("--- Expected\n+++ Actual\n")
	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffpatch.DiffDelete:
				red.Fprintf(&buf, "-%s\n", line)
			case diffpatch.DiffInsert:
				green.Fprintf(&buf, "+%s\n", line)
			default:
				fmt.Fprintf(&buf, " %s\n", line)
			}
		}
	}
	return buf.String()
}

// ComparisonType returns Equivalent when v is, or contains, a reflection
// object or an error, and Identical otherwise. Containers searched are
// *Array, slices, arrays and maps.
func ComparisonType(v any, meta *metainfo.MetaInfo) string {
	if needsEquivalence(v, meta, make(map[pathKey]struct{})) {
		return Equivalent
	}
	return Identical
}

// pathKey locates a container by its storage. Subslices share a data
// pointer with their parent, so the length is part of the key. Arrays
// (*exporter.Array) use a length of -1.
type pathKey struct {
	ptr uintptr
	len int
}

// needsEquivalence searches v depth first. A container is skipped only
// while it is already on the current path, which stops cycles without
// hiding aliased containers reached along another path.
func needsEquivalence(v any, meta *metainfo.MetaInfo, path map[pathKey]struct{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(error); ok {
		return true
	}
	if meta.IsReflection(v) {
		return true
	}
	if a, ok := v.(*exporter.Array); ok {
		if a == nil {
			return false
		}
		k := pathKey{ptr: reflect.ValueOf(a).Pointer(), len: -1}
		if _, ok := path[k]; ok {
			return false
		}
		path[k] = struct{}{}
		defer delete(path, k)
		for _, el := range a.All() {
			if needsEquivalence(el, meta, path) {
				return true
			}
		}
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return false
		}
		k := pathKey{ptr: rv.Pointer(), len: rv.Len()}
		if _, ok := path[k]; ok {
			return false
		}
		path[k] = struct{}{}
		defer delete(path, k)
	case reflect.Array:
	default:
		return false
	}
	if rv.Kind() == reflect.Map {
		iter := rv.MapRange()
		for iter.Next() {
			if needsEquivalence(iter.Value().Interface(), meta, path) {
				return true
			}
		}
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if needsEquivalence(rv.Index(i).Interface(), meta, path) {
			return true
		}
	}
	return false
}

var defaultMeta = sync.OnceValue(func() *metainfo.MetaInfo { return metainfo.New() })

// ParsedClass maps a native reflection class name to its parsed name.
func ParsedClass(name string) (string, error) { return defaultMeta().ParsedClass(name) }

// NativeClass maps a parsed reflection class name to its native name.
func NativeClass(name string) (string, error) { return defaultMeta().NativeClass(name) }

// ReplaceNativeClasses rewrites native reflection class names in text.
func ReplaceNativeClasses(text string) string { return defaultMeta().ReplaceNativeClasses(text) }

// ReplaceParsedClasses rewrites parsed reflection class names in text.
func ReplaceParsedClasses(text string) string { return defaultMeta().ReplaceParsedClasses(text) }
