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
	"strconv"

	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/reflection"
)

// Builtin returns a fresh table describing the native reflection classes.
func Builtin() apis.RuleTable {
	t := NewTable()
	for class, rs := range builtinRules() {
		if err := t.Register(class, rs...); err != nil {
			panic(err)
		}
	}
	return t
}

func builtinRules() map[string][]apis.Rule {
	name := Chain("name", Method("getName", func(n reflection.Named) any { return n.GetName() }))
	class := Chain("class",
		Method("getDeclaringClass", func(m reflection.ClassMember) any { return m.GetDeclaringClass() }),
		Method("getName", func(n reflection.Named) any { return n.GetName() }),
	)

	return map[string][]apis.Rule{
		reflection.ClassReflectionClass:         {name},
		reflection.ClassReflectionClassConstant: {class, name},
		reflection.ClassReflectionException: {
			Custom("message", exceptionMessage),
			WithDefault(Custom("code", exceptionCode), 0),
			WithDefault(Custom("previous", exceptionPrevious), nil),
		},
		reflection.ClassReflectionExtension: {name},
		reflection.ClassReflectionFunction:  {Custom("name", DeclaringFunction)},
		reflection.ClassReflectionMethod:    {class, name},
		reflection.ClassReflectionParameter: {
			Custom("function", func(obj any) (apis.ValueInfo, error) {
				p, ok := obj.(reflection.Parameter)
				if !ok {
					return apis.ValueInfo{}, fmt.Errorf("%w: getDeclaringFunction() on %T", ErrNoSuchMethod, obj)
				}
				return DeclaringFunction(p.GetDeclaringFunction())
			}),
			Chain("parameter", Method("getName", func(n reflection.Named) any { return n.GetName() })),
		},
		reflection.ClassReflectionProperty: {class, name},
		reflection.ClassReflectionGenerator: {
			Chain("generator", Method("getExecutingGenerator", func(g reflection.Generator) any { return g.GetExecutingGenerator() })),
		},
		// Not reachable from any test fixture; kept so every native class has an entry.
		reflection.ClassReflectionZendExtension: {name},
	}
}

// DeclaringFunction describes the function fn as a constructor argument:
// a method is [class, name], a named function is its name and a closure is
// located by file and line range.
func DeclaringFunction(fn any) (apis.ValueInfo, error) {
	f, ok := fn.(reflection.FunctionAbstract)
	if !ok {
		return apis.ValueInfo{}, fmt.Errorf("%w: %#v", ErrUnexpectedFunction, fn)
	}

	if f.IsClosure() {
		vi := apis.ValueInfo{Kind: apis.KindClosure}
		if c, ok := f.(reflection.Function); ok {
			vi.Value = c.GetClosure()
		}
		if file := f.GetFileName(); file != "" {
			vi.File = file
			vi.Lines = strconv.Itoa(f.GetStartLine())
			if f.GetStartLine() != f.GetEndLine() {
				vi.Lines += "-" + strconv.Itoa(f.GetEndLine())
			}
		}
		return vi, nil
	}

	switch f := f.(type) {
	case reflection.Method:
		return apis.PlainValue([]any{f.GetDeclaringClass().GetName(), f.GetName()}), nil
	case reflection.Function:
		return apis.PlainValue(f.GetName()), nil
	}
	return apis.ValueInfo{}, fmt.Errorf("%w: %#v", ErrUnexpectedFunction, fn)
}

func exceptionMessage(obj any) (apis.ValueInfo, error) {
	switch e := obj.(type) {
	case reflection.Throwable:
		return apis.PlainValue(e.GetMessage()), nil
	case error:
		return apis.PlainValue(e.Error()), nil
	}
	return apis.ValueInfo{}, fmt.Errorf("%w: getMessage() on %T", ErrNoSuchMethod, obj)
}

func exceptionCode(obj any) (apis.ValueInfo, error) {
	switch e := obj.(type) {
	case reflection.Throwable:
		return apis.PlainValue(e.GetCode()), nil
	case error:
		return apis.PlainValue(0), nil
	}
	return apis.ValueInfo{}, fmt.Errorf("%w: getCode() on %T", ErrNoSuchMethod, obj)
}

func exceptionPrevious(obj any) (apis.ValueInfo, error) {
	var prev error
	switch e := obj.(type) {
	case reflection.Throwable:
		prev = e.GetPrevious()
	case error:
		prev = errors.Unwrap(e)
	default:
		return apis.ValueInfo{}, fmt.Errorf("%w: getPrevious() on %T", ErrNoSuchMethod, obj)
	}
	if prev == nil {
		return apis.PlainValue(nil), nil
	}
	return apis.PlainValue(prev), nil
}
