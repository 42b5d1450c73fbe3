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

package metainfo

import (
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/reflequiv/apis"
	uref "dirpx.dev/reflequiv/utils/reflect"
)

// Field is one named display value.
type Field struct {
	Name string
	Info apis.ValueInfo
}

// Arg is one named constructor argument.
type Arg struct {
	Name  string
	Value any
}

// Representation describes an inspectable object by the constructor
// arguments that would rebuild it.
type Representation struct {
	// Class is the resolved class of the object.
	Class string
	// ConstructorArgs is nil when some field cannot be passed as a value.
	ConstructorArgs []Arg
	// DisplayValues lists the emitted fields in rule order.
	DisplayValues []Field
}

// Reconstructible reports whether ConstructorArgs is available.
func (r Representation) Reconstructible() bool {
	return r.ConstructorArgs != nil
}

// Representation builds the descriptor of obj from its class rule set.
//
// A field equal to its declared default is held back, and only emitted
// when a later field is. Trailing defaults are therefore omitted while
// positional arguments stay aligned.
func (m *MetaInfo) Representation(obj any) (Representation, error) {
	class := m.ClassOf(obj)
	rs, err := m.lookupRules(obj, class)
	if err != nil {
		return Representation{}, err
	}

	rep := Representation{
		Class:         class,
		DisplayValues: make([]Field, 0, len(rs)),
	}
	args := make([]Arg, 0, len(rs))
	var held []Field

	for _, r := range rs {
		vi, err := r.Extract(obj)
		if err != nil {
			return Representation{}, fmt.Errorf("%w: %s.%s: %w", ErrExtract, class, r.Name, err)
		}

		if r.HasDefault && vi.IsValue() && uref.Identical(vi.Value, r.Default) && args != nil {
			held = append(held, Field{Name: r.Name, Info: vi})
			continue
		}

		for _, f := range held {
			rep.DisplayValues = append(rep.DisplayValues, f)
			if args != nil {
				args = append(args, Arg{Name: f.Name, Value: f.Info.Value})
			}
		}
		held = held[:0]

		rep.DisplayValues = append(rep.DisplayValues, Field{Name: r.Name, Info: vi})
		if !vi.IsValue() {
			args = nil
		}
		if args != nil {
			args = append(args, Arg{Name: r.Name, Value: vi.Value})
		}
	}

	rep.ConstructorArgs = args
	return rep, nil
}

// lookupRules finds the rule set for obj: its own class, the native class
// of a parsed name, or the exception rule set for any error.
func (m *MetaInfo) lookupRules(obj any, class string) ([]apis.Rule, error) {
	if rs, ok := m.rules.Lookup(class); ok {
		return rs, nil
	}
	if native, err := m.NativeClass(class); err == nil {
		if rs, ok := m.rules.Lookup(trimLead(native)); ok {
			m.log.Debug("dispatch via native class", zap.String("class", class), zap.String("native", native))
			return rs, nil
		}
	}
	if _, ok := obj.(error); ok {
		if rs, ok := m.rules.Lookup(m.cfg.ExceptionClass); ok {
			m.log.Debug("dispatch via exception class", zap.String("class", class), zap.String("rules", m.cfg.ExceptionClass))
			return rs, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotImplemented, class)
}

func trimLead(class string) string {
	if len(class) > 0 && class[0] == '\\' {
		return class[1:]
	}
	return class
}
