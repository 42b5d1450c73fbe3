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

// Config carries read-only knobs shared by class naming, extraction and export.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// ParsedNamespace is the namespace that prefixes parsed reflection
	// class names, written without leading or trailing separators
	// (e.g. `Go\ParserReflection`).
	ParsedNamespace string

	// ExceptionClass names the rule set used for error values that have
	// no rule set of their own.
	ExceptionClass string

	// IndentWidth is the number of spaces added per nesting level in exports.
	IndentWidth int

	// MaxUnwrap limits pointer unwrapping when a class name is derived
	// from a Go type. Acts as a safety guard against pathological nesting.
	MaxUnwrap int
}
