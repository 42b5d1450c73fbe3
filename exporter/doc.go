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

// Package exporter renders arbitrary Go values as human-readable text in a
// fixed format with numbered back-references.
//
// Containers print as
//
//	Array &0 (
//	    'key' => 'value'
//	    1 => Array &1 ()
//	)
//
// and structs as "<Class> Object &<id> (...)". An object or *Array seen
// before prints as its header only. Ids are assigned in first-visit order.
//
// Every nested value goes back through the configured Recurser, so a
// wrapper can intercept values at any depth.
package exporter
