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
	"strings"

	"github.com/dlclark/regexp2"
)

const reflectionName = `Reflect(ion([A-Z]\w*)?|or)`

// lookbehind rejects separators glued to a preceding identifier, so that
// Foo\ReflectionClass is left alone.
const lookbehind = `(?<![a-zA-Z0-9_\x7f-\xff])`

// patterns holds the class-name expressions compiled for one namespace.
type patterns struct {
	ns            string
	native        *regexp2.Regexp
	parsed        *regexp2.Regexp
	replaceNative *regexp2.Regexp
	replaceParsed *regexp2.Regexp
	nativeRepl    string
}

func compilePatterns(ns string) *patterns {
	parts := strings.Split(ns, `\`)
	for i, p := range parts {
		parts[i] = regexp2.Escape(p)
	}
	exact := strings.Join(parts, `\\`)
	loose := strings.Join(parts, `\\+`)

	return &patterns{
		ns:     ns,
		native: regexp2.MustCompile(`^\\?`+reflectionName+`$`, regexp2.None),
		parsed: regexp2.MustCompile(`^\\?`+exact+`\\`+reflectionName+`$`, regexp2.None),
		replaceNative: regexp2.MustCompile(
			`(`+lookbehind+`\\+|[^\\]|^)\b(`+reflectionName+`)\b`, regexp2.None),
		replaceParsed: regexp2.MustCompile(
			`(`+lookbehind+`\\+|[^\\]|^)\b`+loose+`\\+(`+reflectionName+`)\b`, regexp2.None),
		nativeRepl: "${1}" + strings.ReplaceAll(ns, "$", "$$") + `\${2}`,
	}
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// replace runs re over s. No match timeout is configured, so the engine
// never reports an error.
func replace(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// IsNativeClass reports whether name is a native reflection class name.
func (m *MetaInfo) IsNativeClass(name string) bool {
	return matches(m.pat.native, name)
}

// IsParsedClass reports whether name is a parsed reflection class name.
func (m *MetaInfo) IsParsedClass(name string) bool {
	return matches(m.pat.parsed, name)
}

// ParsedClass returns the parsed class equivalent to the native class name,
// keeping a leading separator.
func (m *MetaInfo) ParsedClass(name string) (string, error) {
	if !m.IsNativeClass(name) {
		return "", &ClassNameError{Name: name, Expected: ExpectBuiltin}
	}
	if rest, ok := strings.CutPrefix(name, `\`); ok {
		return `\` + m.pat.ns + `\` + rest, nil
	}
	return m.pat.ns + `\` + name, nil
}

// NativeClass returns the native class equivalent to the parsed class name,
// keeping a leading separator.
func (m *MetaInfo) NativeClass(name string) (string, error) {
	if !m.IsParsedClass(name) {
		return "", &ClassNameError{Name: name, Expected: ExpectParsed}
	}
	lead, rest := "", name
	if r, ok := strings.CutPrefix(name, `\`); ok {
		lead, rest = `\`, r
	}
	return lead + strings.TrimPrefix(rest, m.pat.ns+`\`), nil
}

// ReplaceNativeClasses rewrites every native reflection class name in text
// to its parsed equivalent. Names already under a namespace are untouched.
func (m *MetaInfo) ReplaceNativeClasses(text string) string {
	return replace(m.pat.replaceNative, text, m.pat.nativeRepl)
}

// ReplaceParsedClasses rewrites every parsed reflection class name in text
// to its native equivalent.
func (m *MetaInfo) ReplaceParsedClasses(text string) string {
	return replace(m.pat.replaceParsed, text, "${1}${2}")
}
