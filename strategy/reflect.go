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

package strategy

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/reflequiv/apis"
	uref "dirpx.dev/reflequiv/utils/reflect"
)

// AnonymousClass is the class name given to objects of unnamed struct types.
const AnonymousClass = "stdClass"

// NewReflectStrategy creates an apis.Strategy that derives class names from
// Go types, using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes a stable "pkg.Type"
// class name. It unwraps pointers via Normalize and strips generic
// instantiation parameters. Unnamed struct types become AnonymousClass;
// other unnamed types are left unresolved.
type reflectStrategy struct{}

var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// classNameCache caches resolved class names by (type, config knobs).
var classNameCache sync.Map // key: cacheKey, val: string

// TryResolve computes the class name for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the class name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg)
}

// byType resolves the class name for t with memoization.
func byType(t reflect.Type, cfg apis.Config) (string, bool) {
	key := cacheKey{t: t, maxUnwrap: int16(cfg.MaxUnwrap)}
	if v, ok := classNameCache.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}

	name := ""
	base, err := uref.Normalize(t, cfg)
	switch {
	case err == nil:
		name = stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	case isAnonymousStruct(t, cfg):
		name = AnonymousClass
	}

	classNameCache.Store(key, name)
	return name, name != ""
}

// isAnonymousStruct reports whether t (or what it points to) is an unnamed struct.
func isAnonymousStruct(t reflect.Type, cfg apis.Config) bool {
	for i := 0; t.Kind() == reflect.Pointer && i < cfg.MaxUnwrap; i++ {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t.Name() == ""
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
