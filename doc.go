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

// Package reflequiv serializes reflection objects so that a "native"
// runtime object and its "parsed" counterpart produce the same text.
//
// A reflection engine that reimplements the host runtime's reflection API
// from source code needs tests asserting that every object it builds
// matches the native one. Comparing the objects directly is not possible:
// their classes differ (ReflectionClass against
// Go\ParserReflection\ReflectionClass) and their internal state differs.
// reflequiv renders both through a canonical representation built from a
// small set of public accessors per class, with every native class name
// rewritten to its parsed counterpart, so the two renderings can be
// compared as plain text.
//
// # Layers
//
//   - transform: ordered regex rewrites applied to strings before
//     comparison (TextTransformer).
//   - metainfo: class name mapping between the native and parsed families
//     and the representation descriptor of an object (ReflectionMetaInfo).
//   - exporter: the base serializer with its recursion context.
//   - equiv: the serializer used for comparison (EquivilanceExporter).
//   - constraint: the assertion built on top of equiv
//     (IsParsedEquivilantToReflectionValue).
//
// # Global snapshot
//
// The root package holds a read-mostly snapshot of four things:
//
//   - Config: the parsed namespace, the exception class used for plain
//     Go errors, the indent width and unwrap depth.
//
//   - Registry: explicit mappings from Go types to host class names.
//
//   - Resolver: answers "what is the class of this value?" by trying,
//     in order:
//     1. apis.Classer, when the value implements it;
//     2. the Registry;
//     3. a reflect-based "pkg.Type" fallback.
//
//   - Rules: the extraction rule table consulted when building a
//     representation. It starts from rules.Builtin() and accepts extra
//     classes through RegisterRules.
//
// A Builder constructs Registry, Resolver and Rules for a Config and may
// migrate entries from the previous instances. Every published snapshot
// also carries a metainfo.MetaInfo bound to its components.
//
// Readers (ClassOf, ClassOfType, Meta, Export, Rules) load the snapshot
// atomically and never lock:
//
//	out, err := reflequiv.Export(reflection.NewClass("DateTime"))
//
// Writers (SetConfig, SetBuilder, SetRegistry, SetResolver, SetRules,
// SetLogger, SetAll) take a build mutex, derive a new snapshot and swap it
// in. Per-export recursion state lives in an exporter.Context created for
// each top-level call, never in the snapshot.
//
// # Pinning
//
// SetRegistry, SetResolver and SetRules pin the layer they set: later
// rebuilds keep it until the matching Unpin call. This lets tests inject
// a fixed registry while still changing the configuration.
//
// # Scope
//
// reflequiv does not parse source code and does not run test suites. It
// only renders and compares values handed to it.
package reflequiv
