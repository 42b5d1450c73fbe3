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

package apis

// ValueKind tags how a field of an inspectable object was resolved.
type ValueKind int

const (
	// KindValue is a plain value that can be passed to a constructor.
	KindValue ValueKind = iota
	// KindClosure is a closure; it cannot be rebuilt from data and is
	// only located by file and line range.
	KindClosure
)

// String implements fmt.Stringer.
func (k ValueKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindClosure:
		return "Closure"
	default:
		return "unknown"
	}
}

// ValueInfo is the tagged result of extracting one field.
type ValueInfo struct {
	Kind ValueKind
	// Value holds the plain value for KindValue, and the closure itself
	// (when available) for KindClosure.
	Value any
	// File and Lines locate a closure. Lines is "start" or "start-end".
	File  string
	Lines string
}

// PlainValue wraps v as a KindValue ValueInfo.
func PlainValue(v any) ValueInfo {
	return ValueInfo{Kind: KindValue, Value: v}
}

// IsValue reports whether the info carries a plain value.
func (vi ValueInfo) IsValue() bool { return vi.Kind == KindValue }

// Extractor resolves one field of an inspectable object.
type Extractor func(obj any) (ValueInfo, error)

// RuleSource tells how a Rule obtains its value.
type RuleSource int

const (
	// SourceChain calls a chain of getters, each on the previous result.
	SourceChain RuleSource = iota
	// SourceCustom runs a custom extraction function.
	SourceCustom
)

// Rule describes how one constructor argument of a class is extracted.
type Rule struct {
	// Name is the constructor parameter (and display field) name.
	Name string
	// Source tells whether Extract wraps a getter chain or a custom function.
	Source RuleSource
	// Path lists getter names for SourceChain rules, for diagnostics.
	Path []string
	// Extract resolves the field value.
	Extract Extractor
	// Default is compared against plain values when HasDefault is set;
	// matching fields are suppressed unless a later field is emitted.
	Default    any
	HasDefault bool
}

// RuleTable maps class names to their ordered extraction rules.
type RuleTable interface {
	// Register installs the rule list for class. Registering a class twice fails.
	Register(class string, rules ...Rule) error
	// Lookup returns the rule list registered for class.
	Lookup(class string) ([]Rule, bool)
	// Classes returns the registered class names, sorted.
	Classes() []string
	// Count returns the number of registered classes.
	Count() int
	// Reset clears all registered classes.
	Reset()
}
