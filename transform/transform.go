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

// Package transform provides TextTransformer, an ordered list of regular
// expression substitutions applied to strings before they are compared.
//
// Patterns use Perl syntax, lookaround included. Replacements reference
// groups as $1 or ${name}.
package transform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

// ErrInvalidPattern is returned by New for patterns that do not compile.
var ErrInvalidPattern = errors.New("reflequiv(transform): invalid pattern")

// Rule is one (pattern, replacement) pair.
type Rule struct {
	Pattern     string
	Replacement string
}

// Transformer applies its rules in order. It holds no mutable state and is
// safe for concurrent use.
type Transformer struct {
	rules []Rule
	re    []*regexp2.Regexp
}

// New compiles rules into a Transformer.
func New(rules ...Rule) (*Transformer, error) {
	t := &Transformer{
		rules: slices.Clone(rules),
		re:    make([]*regexp2.Regexp, len(rules)),
	}
	for i, r := range rules {
		re, err := regexp2.Compile(r.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: rule #%d %q: %v", ErrInvalidPattern, i, r.Pattern, err)
		}
		t.re[i] = re
	}
	return t, nil
}

// MustNew is like New but panics on an invalid pattern.
func MustNew(rules ...Rule) *Transformer {
	t, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pairs builds rules from alternating pattern and replacement strings.
// It panics on an odd number of arguments.
func Pairs(kv ...string) []Rule {
	if len(kv)%2 != 0 {
		panic("reflequiv(transform): Pairs needs an even number of arguments")
	}
	out := make([]Rule, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, Rule{Pattern: kv[i], Replacement: kv[i+1]})
	}
	return out
}

// Filter applies every rule to in, each one seeing the previous output.
func (t *Transformer) Filter(in string) (string, error) {
	out := in
	for i, re := range t.re {
		var err error
		out, err = re.Replace(out, t.rules[i].Replacement, -1, -1)
		if err != nil {
			return "", fmt.Errorf("reflequiv(transform): rule #%d %q: %w", i, t.rules[i].Pattern, err)
		}
	}
	return out, nil
}

// Rules returns a copy of the configured rules.
func (t *Transformer) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Len returns the number of rules.
func (t *Transformer) Len() int { return len(t.rules) }
