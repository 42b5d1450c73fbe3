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

// Package metainfo knows which class names belong to the reflection family,
// how native and parsed names map onto each other, and which constructor
// arguments would rebuild a given inspectable object.
//
// Native names match Reflection, Reflector or Reflection<Suffix>, with an
// optional leading namespace separator. Parsed names are the same names
// under the configured namespace (Go\ParserReflection by default).
//
//	m := metainfo.New()
//	m.ParsedClass(`\ReflectionClass`) // `\Go\ParserReflection\ReflectionClass`
package metainfo
