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

	"dirpx.dev/reflequiv/apis"
)

var (
	// ErrNoSuchMethod is returned when a getter in a chain does not apply
	// to the value it is called on.
	ErrNoSuchMethod = errors.New("reflequiv(rules): call to undefined method")
	// ErrUnexpectedFunction is returned by DeclaringFunction for values that
	// are neither functions nor methods.
	ErrUnexpectedFunction = errors.New("reflequiv(rules): declaring function is neither a function nor a method")
)

// Step is one getter call in a chain rule.
type Step struct {
	// Method is the getter name, used in error messages.
	Method string
	// Call invokes the getter on the current value.
	Call func(v any) (any, error)
}

// Method builds a Step calling getter on values implementing T.
func Method[T any](name string, getter func(T) any) Step {
	return Step{
		Method: name,
		Call: func(v any) (any, error) {
			t, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("%w: %s() on %T", ErrNoSuchMethod, name, v)
			}
			return getter(t), nil
		},
	}
}

// Chain builds a rule calling steps in order, each on the previous result,
// starting from the inspected object. The last result is a plain value.
func Chain(name string, steps ...Step) apis.Rule {
	path := make([]string, len(steps))
	for i, s := range steps {
		path[i] = s.Method
	}
	return apis.Rule{
		Name:   name,
		Source: apis.SourceChain,
		Path:   path,
		Extract: func(obj any) (apis.ValueInfo, error) {
			cur := obj
			for _, s := range steps {
				next, err := s.Call(cur)
				if err != nil {
					return apis.ValueInfo{}, fmt.Errorf("field %q: %w", name, err)
				}
				cur = next
			}
			return apis.PlainValue(cur), nil
		},
	}
}

// Custom builds a rule backed by an arbitrary extractor.
func Custom(name string, extract apis.Extractor) apis.Rule {
	return apis.Rule{
		Name:    name,
		Source:  apis.SourceCustom,
		Extract: extract,
	}
}

// WithDefault returns r with a default value. A field equal to its default
// is left out unless a later field is emitted.
func WithDefault(r apis.Rule, def any) apis.Rule {
	r.Default = def
	r.HasDefault = true
	return r
}
