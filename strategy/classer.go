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
	"reflect"

	"dirpx.dev/reflequiv/apis"
)

// NewClasserStrategy creates an apis.Strategy that uses apis.Classer.
func NewClasserStrategy() apis.Strategy {
	return &classerStrategy{}
}

// classerStrategy is a zero-cost fast path: if v implements apis.Classer,
// return its ClassName() and stop the chain.
type classerStrategy struct{}

var _ apis.Strategy = (*classerStrategy)(nil)

// TryResolve checks if v implements apis.Classer and returns its ClassName().
// An empty class name falls through.
func (*classerStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	if c, ok := v.(apis.Classer); ok {
		if class := c.ClassName(); class != "" {
			return class, true
		}
	}
	return "", false
}

// TryResolveType always returns false: Classer requires an instance.
func (*classerStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (string, bool) {
	return "", false
}
