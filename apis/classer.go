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

// Classer is implemented by values that know their host-language class name,
// for example "ReflectionClass" or `Go\ParserReflection\ReflectionMethod`.
//
// It is the fast path of class resolution: when a value implements Classer,
// no registry lookup or reflection happens for it.
type Classer interface {
	// ClassName returns the class name of the receiver. It must not depend
	// on mutable instance state.
	ClassName() string
}
