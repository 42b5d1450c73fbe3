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

// Package reflection declares the capabilities the extraction rules expect
// from inspectable objects, and provides small native-side reference objects.
//
// Inspectable objects are produced elsewhere (by the runtime or by the
// static parser); this package only names the getters the rule table calls.
// An object takes part in a rule when it implements the matching interface,
// so a parsed-side type needs no registration beyond its ClassName.
//
// The Native* types stand in for native runtime reflection objects built by
// name, the way a test builds its expected values:
//
//	want := reflection.NewClassConstant("DateTime", "ATOM")
//	got := parsedFile.Class("DateTime").Constant("ATOM")
package reflection
