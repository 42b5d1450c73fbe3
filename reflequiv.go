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

package reflequiv

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/builder"
	"dirpx.dev/reflequiv/config"
	"dirpx.dev/reflequiv/equiv"
	"dirpx.dev/reflequiv/metainfo"
)

// init initializes the global snapshot.
func init() {
	b := builder.New()
	s := &state{cfg: config.DefaultConfig(), bld: b, log: zap.NewNop()}
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil)
	s.rt = b.BuildRules(s.cfg, nil)
	publish(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("reflequiv: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("reflequiv: builder returned nil resolver")
	// ErrNilRules is raised when a builder returns a nil rule table.
	ErrNilRules = errors.New("reflequiv: builder returned nil rule table")
)

// ClassOf resolves the host class name of v using the global resolver.
func ClassOf(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ClassOfType resolves the host class name of t using the global resolver.
func ClassOfType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// Meta returns the meta info bound to the current snapshot.
func Meta() *metainfo.MetaInfo {
	return st.Load().meta
}

// Export renders v with a fresh equivalence exporter bound to the current
// snapshot. Options may override the meta info or add a transformer.
func Export(v any, opts ...equiv.Option) (string, error) {
	s := st.Load()
	all := append([]equiv.Option{equiv.WithMeta(s.meta), equiv.WithLogger(s.log)}, opts...)
	return equiv.New(all...).Export(v)
}

// RegisterType adds a type-class mapping to the global registry.
func RegisterType(t reflect.Type, class string) error {
	return st.Load().reg.Register(t, class)
}

// RegisterRules adds an extraction rule set for class to the global rule table.
func RegisterRules(class string, rules ...apis.Rule) error {
	return st.Load().rt.Register(class, rules...)
}

// SetAll explicitly sets the global components.
//
// Nil arguments leave the corresponding component unchanged or, when
// unpinned, let the builder rebuild it. Explicit components are pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, rt apis.RuleTable, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if reg != nil {
		next.reg, next.preg = reg, true
	}
	if res != nil {
		next.res, next.pres = res, true
	}
	if rt != nil {
		next.rt, next.prt = rt, true
	}
	publish(rebuild(old, &next))
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds every unpinned layer.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.cfg = cfg
	publish(rebuild(old, &next))
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry pins reg as the global registry and rebuilds the resolver
// unless it is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg, next.preg = reg, true
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, reg, old.res)
	}
	publish(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver pins res as the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.res, next.pres = res, true
	publish(&next)
}

// Rules returns the global extraction rule table.
func Rules() apis.RuleTable {
	return st.Load().rt
}

// SetRules pins rt as the global rule table.
func SetRules(rt apis.RuleTable) {
	if rt == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.rt, next.prt = rt, true
	publish(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds every unpinned layer with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.bld = b
	publish(rebuild(old, &next))
}

// Logger returns the logger used by snapshot-bound components.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger replaces the logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.log = l
	publish(&next)
}

// IsRegistryPinned reports whether the global registry survives rebuilds.
func IsRegistryPinned() bool { return st.Load().preg }

// IsResolverPinned reports whether the global resolver survives rebuilds.
func IsResolverPinned() bool { return st.Load().pres }

// IsRulesPinned reports whether the global rule table survives rebuilds.
func IsRulesPinned() bool { return st.Load().prt }

// PinRegistry keeps the global registry across rebuilds.
func PinRegistry() { pin(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the next rebuild replace the global registry.
func UnpinRegistry() { pin(func(s *state) { s.preg = false }) }

// PinResolver keeps the global resolver across rebuilds.
func PinResolver() { pin(func(s *state) { s.pres = true }) }

// UnpinResolver lets the next rebuild replace the global resolver.
func UnpinResolver() { pin(func(s *state) { s.pres = false }) }

// PinRules keeps the global rule table across rebuilds.
func PinRules() { pin(func(s *state) { s.prt = true }) }

// UnpinRules lets the next rebuild replace the global rule table.
func UnpinRules() { pin(func(s *state) { s.prt = false }) }

// pin publishes a copy of the current snapshot with flags changed by set.
// Components are untouched, so the meta info is carried over as is.
func pin(set func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	set(&next)
	st.Store(&next)
}

// rebuild asks next's builder for every unpinned layer. old supplies the
// previous components to migrate from.
func rebuild(old, next *state) *state {
	b := next.bld
	if !next.preg {
		next.reg = b.BuildRegistry(next.cfg, old.reg)
	}
	if !next.pres {
		next.res = b.BuildResolver(next.cfg, next.reg, old.res)
	}
	if !next.prt {
		next.rt = b.BuildRules(next.cfg, old.rt)
	}
	return next
}

// publish validates s, binds a fresh meta info to it and stores it.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	if s.rt == nil {
		panic(ErrNilRules)
	}
	s.meta = metainfo.New(
		metainfo.WithConfig(s.cfg),
		metainfo.WithResolver(s.res),
		metainfo.WithRules(s.rt),
		metainfo.WithLogger(s.log),
	)
	st.Store(s)

	s.log.Debug("snapshot rebuilt",
		zap.Int("types", s.reg.Count()),
		zap.Int("classes", s.rt.Count()),
		zap.Bool("registry_pinned", s.preg),
		zap.Bool("resolver_pinned", s.pres),
		zap.Bool("rules_pinned", s.prt),
	)
}

// buildMu serializes writers so partially-built snapshots are never published.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is the global snapshot.
// Published atomically via st.Store; never mutate fields of a published
// state. Writers copy it, change the copy and swap it in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg maps Go types to class names.
	reg apis.Registry
	// res resolves class names.
	res apis.Resolver
	// rt holds the extraction rules per class.
	rt apis.RuleTable
	// bld rebuilds unpinned layers.
	bld apis.Builder
	// meta is bound to cfg, res and rt.
	meta *metainfo.MetaInfo
	// log is shared with the components bound to the snapshot.
	log *zap.Logger
	// preg, pres and prt mark pinned layers.
	preg, pres, prt bool
}
