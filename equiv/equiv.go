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

// Package equiv exports values so that a native reflection object and its
// parsed counterpart produce the same text.
//
// Reflection objects are not walked field by field. They are replaced by
// the constructor arguments that would rebuild them (see metainfo) and
// labelled with the parsed class name:
//
//	Go\ParserReflection\ReflectionClass Object &0 (
//	    'name' => 'DateTime'
//	)
//
// Every other value is exported by the base exporter, with nested values
// coming back through this package.
package equiv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dirpx.dev/reflequiv/exporter"
	"dirpx.dev/reflequiv/metainfo"
	"dirpx.dev/reflequiv/transform"
	uref "dirpx.dev/reflequiv/utils/reflect"
)

var (
	// ErrNotIdempotent is returned when filtering a string twice differs
	// from filtering it once.
	ErrNotIdempotent = errors.New("reflequiv(equiv): provided TextTransformer is not idempotent")
	// ErrUnresolvedValue is returned for fields that cannot be exported as
	// plain values, such as closures.
	ErrUnresolvedValue = errors.New("reflequiv(equiv): field is not a plain value")
	// ErrInternal reports a broken numbering invariant.
	ErrInternal = errors.New("reflequiv(equiv): internal error")
)

// Exporter is the equivalence exporter. It is safe for concurrent use.
type Exporter struct {
	base *exporter.Exporter
	meta *metainfo.MetaInfo
	tr   *transform.Transformer
	log  *zap.Logger
}

var _ exporter.Recurser = (*Exporter)(nil)

type options struct {
	meta *metainfo.MetaInfo
	tr   *transform.Transformer
	log  *zap.Logger
}

// Option configures an Exporter.
type Option func(*options)

// WithTransformer filters every exported string through t.
func WithTransformer(t *transform.Transformer) Option {
	return func(o *options) { o.tr = t }
}

// WithMeta sets the MetaInfo providing class names and representations.
func WithMeta(m *metainfo.MetaInfo) Option {
	return func(o *options) { o.meta = m }
}

// WithLogger sets the logger. Back-references are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// New returns an Exporter.
func New(opts ...Option) *Exporter {
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
	e := &Exporter{
		meta: o.meta,
		tr:   o.tr,
		log:  o.log.Named("equiv"),
	}
	e.base = exporter.New(
		exporter.WithConfig(o.meta.Config()),
		exporter.WithResolver(o.meta.Resolver()),
		exporter.WithRecurser(e),
	)
	return e
}

// Meta returns the MetaInfo in use.
func (e *Exporter) Meta() *metainfo.MetaInfo { return e.meta }

// Transformer returns the string transformer, or nil.
func (e *Exporter) Transformer() *transform.Transformer { return e.tr }

// Export renders v.
func (e *Exporter) Export(v any) (string, error) {
	return e.RecursiveExport(v, 0, nil)
}

// ShortenedExport renders v on one line.
func (e *Exporter) ShortenedExport(v any) (string, error) {
	return e.base.ShortenedExport(v)
}

// RecursiveExport renders v at the given indentation level.
func (e *Exporter) RecursiveExport(v any, indent int, ctx *exporter.Context) (string, error) {
	if s, ok := v.(string); ok && e.tr != nil {
		out, err := e.filter(s)
		if err != nil {
			return "", err
		}
		return e.base.RecursiveExport(out, indent, ctx)
	}
	if ctx == nil {
		ctx = exporter.NewContext()
	}
	if uref.IsNil(v) {
		return e.base.RecursiveExport(v, indent, ctx)
	}

	refl := e.meta.IsReflection(v)
	_, isErr := v.(error)
	if refl || (isErr && ctx.Shorten) {
		return e.exportObject(v, refl, indent, ctx)
	}
	return e.base.RecursiveExport(v, indent, ctx)
}

func (e *Exporter) filter(s string) (string, error) {
	once, err := e.tr.Filter(s)
	if err != nil {
		return "", err
	}
	twice, err := e.tr.Filter(once)
	if err != nil {
		return "", err
	}
	if twice != once {
		return "", fmt.Errorf("%w: %q becomes %q, then %q", ErrNotIdempotent, s, once, twice)
	}
	return once, nil
}

// exportObject renders v by representation. The object is linked to the id
// its field array will get before the fields are exported, so references
// back to v from inside resolve to that id.
func (e *Exporter) exportObject(v any, refl bool, indent int, ctx *exporter.Context) (string, error) {
	class := e.meta.CanonicalClass(v)
	if id, ok := ctx.Contains(v); ok {
		if eq, ok := ctx.Equivalent(id); ok {
			id = eq
		}
		e.log.Debug("back-reference", zap.String("class", class), zap.Int("id", id))
		return class + " Object &" + strconv.Itoa(id), nil
	}

	rep, err := e.meta.Representation(v)
	if err != nil {
		return "", err
	}
	fields := exporter.NewArray()
	for _, f := range rep.DisplayValues {
		if !f.Info.IsValue() {
			return "", fmt.Errorf("%w: %s field %q is a %s", ErrUnresolvedValue, rep.Class, f.Name, f.Info.Kind)
		}
		val := f.Info.Value
		if s, ok := val.(string); ok && refl {
			val = e.meta.ReplaceNativeClasses(s)
		}
		fields.Set(f.Name, val)
	}

	want := ctx.NextID()
	ctx.Link(v, want)

	wasShort := ctx.Shorten
	ctx.Shorten = true
	raw, err := e.base.RecursiveExport(fields, indent, ctx)
	if !wasShort {
		ctx.Shorten = false
	}
	if err != nil {
		return "", err
	}

	if got, ok := ctx.Contains(fields); !ok || got != want {
		return "", fmt.Errorf("%w: fields of %s not numbered %d", ErrInternal, rep.Class, want)
	}
	body, ok := strings.CutPrefix(raw, "Array &"+strconv.Itoa(want))
	if !ok {
		return "", fmt.Errorf("%w: unexpected header for %s: %.40q", ErrInternal, rep.Class, raw)
	}
	return class + " Object &" + strconv.Itoa(want) + body, nil
}
