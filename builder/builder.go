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

package builder

import (
	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/registry"
	"dirpx.dev/reflequiv/resolver"
	"dirpx.dev/reflequiv/rules"
	"dirpx.dev/reflequiv/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Register(e.Type, e.Class)
		}
	}
	return nreg
}

// BuildResolver builds the default chain: Classer, then the registry, then
// the reflect fallback.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewClasserStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}

// BuildRules returns the builtin rule table extended with every class of
// prt that the builtin table does not define.
func (b *builder) BuildRules(_ apis.Config, prt apis.RuleTable) apis.RuleTable {
	nrt := rules.Builtin()
	if prt != nil {
		for _, class := range prt.Classes() {
			if _, ok := nrt.Lookup(class); ok {
				continue
			}
			rs, _ := prt.Lookup(class)
			_ = nrt.Register(class, rs...)
		}
	}
	return nrt
}
