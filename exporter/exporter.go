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
	"cmp"
	"encoding/hex"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/config"
	"dirpx.dev/reflequiv/resolver"
	"dirpx.dev/reflequiv/strategy"
)

// ClosureClass labels func values.
const ClosureClass = "Closure"

// Recurser exports a single value. Exporter calls it for every nested value.
type Recurser interface {
	RecursiveExport(v any, indent int, ctx *Context) (string, error)
}

// Exporter is the base serializer. It is safe for concurrent use; all
// per-call state lives in the Context.
type Exporter struct {
	cfg  apis.Config
	res  apis.Resolver
	self Recurser
}

var _ Recurser = (*Exporter)(nil)

// Option configures an Exporter.
type Option func(*Exporter)

// WithConfig sets the configuration. Only IndentWidth and MaxUnwrap are used.
func WithConfig(cfg apis.Config) Option {
	return func(e *Exporter) { e.cfg = cfg }
}

// WithResolver sets the resolver naming struct values.
func WithResolver(res apis.Resolver) Option {
	return func(e *Exporter) { e.res = res }
}

// WithRecurser routes nested values through r instead of the Exporter.
func WithRecurser(r Recurser) Option {
	return func(e *Exporter) { e.self = r }
}

// New returns an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg = config.Sanitize(e.cfg)
	if e.res == nil {
		e.res = resolver.New(strategy.NewClasserStrategy(), strategy.NewReflectStrategy())
	}
	if e.self == nil {
		e.self = e
	}
	return e
}

// Export renders v.
func (e *Exporter) Export(v any) (string, error) {
	return e.self.RecursiveExport(v, 0, nil)
}

// ClassOf returns the class label of an object value.
func (e *Exporter) ClassOf(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func {
		return ClosureClass
	}
	if class := e.res.Resolve(v, e.cfg); class != "" {
		return class
	}
	return strategy.AnonymousClass
}

// RecursiveExport renders v at the given indentation level. A nil ctx
// starts a new export.
func (e *Exporter) RecursiveExport(v any, indent int, ctx *Context) (string, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	switch x := v.(type) {
	case nil:
		return "null", nil
	case *Array:
		if x == nil {
			return "null", nil
		}
		return e.exportArray(x, indent, ctx)
	case []byte:
		return exportString(string(x)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return exportFloat(rv.Float(), 32), nil
	case reflect.Float64:
		return exportFloat(rv.Float(), 64), nil
	case reflect.String:
		return exportString(rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return "null", nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return e.exportObject(v, rv.Elem(), indent, ctx)
		}
		return e.self.RecursiveExport(rv.Elem().Interface(), indent, ctx)
	case reflect.Struct:
		return e.exportObject(v, rv, indent, ctx)
	case reflect.Slice, reflect.Array, reflect.Map:
		return e.exportContainer(rv, indent, ctx)
	case reflect.Func:
		if rv.IsNil() {
			return "null", nil
		}
		return fmt.Sprintf("%s Object &%d ()", ClosureClass, ctx.Fresh()), nil
	case reflect.Chan:
		if rv.IsNil() {
			return "null", nil
		}
		return fmt.Sprintf("resource(%d) of type (%s)", ctx.Resource(v), rv.Type()), nil
	}
	return fmt.Sprintf("%v", v), nil
}

type entry struct {
	key any
	val any
}

func (e *Exporter) exportArray(a *Array, indent int, ctx *Context) (string, error) {
	if id, ok := ctx.Contains(a); ok {
		return "Array &" + strconv.Itoa(id), nil
	}
	id := ctx.Add(a)
	entries := make([]entry, 0, a.Len())
	for k, v := range a.All() {
		entries = append(entries, entry{k, v})
	}
	body, err := e.body(entries, indent, ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Array &%d (%s)", id, body), nil
}

func (e *Exporter) exportContainer(rv reflect.Value, indent int, ctx *Context) (string, error) {
	if rv.Kind() != reflect.Array && rv.Len() > 0 {
		k := activeKey{ptr: rv.Pointer(), len: rv.Len()}
		if !ctx.enter(k) {
			return "Array *RECURSION*", nil
		}
		defer ctx.leave(k)
	}
	id := ctx.Fresh()
	body, err := e.body(containerEntries(rv), indent, ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Array &%d (%s)", id, body), nil
}

func (e *Exporter) exportObject(v any, sv reflect.Value, indent int, ctx *Context) (string, error) {
	class := e.ClassOf(v)
	var id int
	// Only pointers carry identity; struct values are copies.
	if reflect.ValueOf(v).Kind() == reflect.Pointer {
		if prev, ok := ctx.Contains(v); ok {
			if eq, linked := ctx.Equivalent(prev); linked {
				prev = eq
			}
			return fmt.Sprintf("%s Object &%d", class, prev), nil
		}
		id = ctx.Add(v)
	} else {
		id = ctx.Fresh()
	}
	body, err := e.body(structEntries(sv), indent, ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Object &%d (%s)", class, id, body), nil
}

// body renders entries one per line, indented one level below indent.
func (e *Exporter) body(entries []entry, indent int, ctx *Context) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	ws := strings.Repeat(" ", e.cfg.IndentWidth*indent)
	pad := ws + strings.Repeat(" ", e.cfg.IndentWidth)

	var b strings.Builder
	b.WriteByte('\n')
	for _, en := range entries {
		k, err := e.self.RecursiveExport(en.key, indent, nil)
		if err != nil {
			return "", err
		}
		val, err := e.self.RecursiveExport(en.val, indent+1, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(pad)
		b.WriteString(k)
		b.WriteString(" => ")
		b.WriteString(val)
		b.WriteByte('\n')
	}
	b.WriteString(ws)
	return b.String(), nil
}

func containerEntries(rv reflect.Value) []entry {
	if rv.Kind() == reflect.Map {
		keys := rv.MapKeys()
		slices.SortFunc(keys, compareKeys)
		out := make([]entry, len(keys))
		for i, k := range keys {
			out[i] = entry{k.Interface(), rv.MapIndex(k).Interface()}
		}
		return out
	}
	out := make([]entry, rv.Len())
	for i := range out {
		out[i] = entry{i, rv.Index(i).Interface()}
	}
	return out
}

// structEntries lists exported fields in declaration order.
func structEntries(sv reflect.Value) []entry {
	t := sv.Type()
	out := make([]entry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		out = append(out, entry{f.Name, sv.Field(i).Interface()})
	}
	return out
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a, b = a.Elem(), b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// binaryByte reports bytes that make a string print as binary.
func binaryByte(c byte) bool {
	return c < 0x09 || (c > 0x0d && c < 0x20 && c != 0x1b)
}

// lf stands in for inserted line feeds; binary strings never get this far.
const lf = "\x00"

var lineBreaks = [...][2]string{
	{"\r\n", `\r\n` + lf},
	{"\n\r", `\n\r` + lf},
	{"\r", `\r` + lf},
	{"\n", `\n` + lf},
}

func exportString(s string) string {
	for i := 0; i < len(s); i++ {
		if binaryByte(s[i]) {
			return "Binary String: 0x" + hex.EncodeToString([]byte(s))
		}
	}
	for _, r := range lineBreaks {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	s = strings.ReplaceAll(s, lf, "\n")
	return "'" + s + "'"
}

func exportFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatFloat(f, 'f', -1, bits) + ".0"
	}
	s := strconv.FormatFloat(f, 'G', -1, bits)
	mant, exp, ok := strings.Cut(s, "E")
	if !ok {
		return s
	}
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "E" + sign + digits
}

// ShortenedExport renders v on one line: long strings are cut, containers
// and objects show only whether they have content.
func (e *Exporter) ShortenedExport(v any) (string, error) {
	switch x := v.(type) {
	case *Array:
		if x != nil {
			return shortArray(x.Len()), nil
		}
	case []byte:
		return e.shortString(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return e.shortString(v)
	case reflect.Slice, reflect.Array, reflect.Map:
		return shortArray(rv.Len()), nil
	case reflect.Struct:
		return e.shortObject(v, len(structEntries(rv))), nil
	case reflect.Pointer:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			return e.shortObject(v, len(structEntries(rv.Elem()))), nil
		}
	case reflect.Func:
		if !rv.IsNil() {
			return e.shortObject(v, 0), nil
		}
	}
	return e.Export(v)
}

func (e *Exporter) shortString(v any) (string, error) {
	s, err := e.Export(v)
	if err != nil {
		return "", err
	}
	s = strings.ReplaceAll(s, "\n", "")
	if utf8.RuneCountInString(s) > 40 {
		r := []rune(s)
		s = string(r[:30]) + "..." + string(r[len(r)-7:])
	}
	return s, nil
}

func (e *Exporter) shortObject(v any, n int) string {
	if n > 0 {
		return e.ClassOf(v) + " Object (...)"
	}
	return e.ClassOf(v) + " Object ()"
}

func shortArray(n int) string {
	if n > 0 {
		return "Array (...)"
	}
	return "Array ()"
}
