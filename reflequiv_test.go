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
	"context"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/builder"
	"dirpx.dev/reflequiv/config"
	"dirpx.dev/reflequiv/equiv"
	"dirpx.dev/reflequiv/reflection"
	"dirpx.dev/reflequiv/registry"
	"dirpx.dev/reflequiv/rules"
	"dirpx.dev/reflequiv/transform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingBuilder delegates to the default builder and records its calls.
type countingBuilder struct {
	mu      sync.Mutex
	inner   apis.Builder
	lastCfg apis.Config
	regs    int
	ress    int
	rts     int
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{inner: builder.New()}
}

func (b *countingBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	b.lastCfg = cfg
	b.regs++
	b.mu.Unlock()
	return b.inner.BuildRegistry(cfg, prev)
}

func (b *countingBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, prev apis.Resolver) apis.Resolver {
	b.mu.Lock()
	b.lastCfg = cfg
	b.ress++
	b.mu.Unlock()
	return b.inner.BuildResolver(cfg, reg, prev)
}

func (b *countingBuilder) BuildRules(cfg apis.Config, prev apis.RuleTable) apis.RuleTable {
	b.mu.Lock()
	b.lastCfg = cfg
	b.rts++
	b.mu.Unlock()
	return b.inner.BuildRules(cfg, prev)
}

func (b *countingBuilder) counts() (int, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs, b.ress, b.rts
}

// nilBuilder returns nil for every layer.
type nilBuilder struct{}

func (nilBuilder) BuildRegistry(apis.Config, apis.Registry) apis.Registry { return nil }
func (nilBuilder) BuildResolver(apis.Config, apis.Registry, apis.Resolver) apis.Resolver { return nil }
func (nilBuilder) BuildRules(apis.Config, apis.RuleTable) apis.RuleTable { return nil }

// reset unpins every layer and rebuilds the snapshot from b. The default
// snapshot is restored when the test ends.
func reset(tb testing.TB, b apis.Builder) {
	tb.Helper()
	restore := func(b apis.Builder) {
		UnpinRegistry()
		UnpinResolver()
		UnpinRules()
		SetLogger(nil)
		SetBuilder(b)
		SetConfig(config.DefaultConfig())
	}
	restore(b)
	tb.Cleanup(func() { restore(builder.New()) })
}

type plain struct{}

type widget struct{ ID int }

func (widget) ClassName() string { return "Widget" }

func TestDefaults(t *testing.T) {
	reset(t, builder.New())

	assert.Equal(t, config.DefaultConfig(), Config())
	assert.NotNil(t, Registry())
	assert.NotNil(t, Resolver())
	assert.NotNil(t, Builder())
	assert.NotNil(t, Logger())
	assert.Equal(t, rules.Builtin().Classes(), Rules().Classes())
	assert.False(t, IsRegistryPinned())
	assert.False(t, IsResolverPinned())
	assert.False(t, IsRulesPinned())

	assert.Equal(t, "Widget", ClassOf(widget{}))
	assert.Equal(t, "reflequiv.plain", ClassOfType(reflect.TypeOf(plain{})))
	assert.Equal(t, reflection.ClassReflectionClass, ClassOf(reflection.NewClass("DateTime")))
}

func TestExport(t *testing.T) {
	reset(t, builder.New())

	got, err := Export(reflection.NewClass("DateTime"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`Go\ParserReflection\ReflectionClass Object &0 (`,
		`    'name' => 'DateTime'`,
		`)`,
	}, "\n"), got)

	tr := transform.MustNew(transform.Pairs(`DateTime`, `Clock`))
	got, err = Export("DateTime", equiv.WithTransformer(tr))
	require.NoError(t, err)
	assert.Equal(t, `'Clock'`, got)
}

func TestExport_FollowsConfig(t *testing.T) {
	reset(t, builder.New())

	SetConfig(config.NewConfig(config.WithParsedNamespace(`Acme\Static`)))
	got, err := Export(reflection.NewMethod("DateTime", "format"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, `Acme\Static\ReflectionMethod Object &0 (`), got)
	assert.True(t, Meta().IsReflection(reflection.NewClass("X")))
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := newCountingBuilder()
	reset(t, b)

	reg1, res1, rt1, meta1 := Registry(), Resolver(), Rules(), Meta()
	r0, s0, t0 := b.counts()

	cfg := config.NewConfig(config.WithIndentWidth(2), config.WithMaxUnwrap(4))
	SetConfig(cfg)

	assert.True(t, reg1 != Registry(), "registry was not rebuilt")
	assert.True(t, res1 != Resolver(), "resolver was not rebuilt")
	assert.True(t, rt1 != Rules(), "rule table was not rebuilt")
	assert.NotSame(t, meta1, Meta())
	assert.Equal(t, cfg, Meta().Config())

	r1, s1, t1 := b.counts()
	assert.Equal(t, []int{r0 + 1, s0 + 1, t0 + 1}, []int{r1, s1, t1})

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, 2, b.lastCfg.IndentWidth)
	assert.Equal(t, 4, b.lastCfg.MaxUnwrap)
}

func TestSetConfig_MigratesRegistrations(t *testing.T) {
	reset(t, builder.New())

	type local struct{}
	require.NoError(t, RegisterType(reflect.TypeOf(local{}), "Local"))
	require.NoError(t, RegisterRules("Widget", rules.Chain("id", rules.Method("ID", func(w widget) any { return w.ID }))))

	SetConfig(config.NewConfig(config.WithIndentWidth(2)))

	assert.Equal(t, "Local", ClassOf(&local{}))
	rep, err := Meta().Representation(widget{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Widget", rep.Class)
	require.Len(t, rep.DisplayValues, 1)
	assert.Equal(t, "id", rep.DisplayValues[0].Name)
	assert.Equal(t, 3, rep.DisplayValues[0].Info.Value)
}

func TestSetRegistry_Pins_and_RebuildsResolver(t *testing.T) {
	reset(t, newCountingBuilder())

	custom := registry.New(config.DefaultConfig())
	require.NoError(t, custom.Register(reflect.TypeOf(widget{}), "Shadowed"))
	res1 := Resolver()

	SetRegistry(custom)
	assert.True(t, IsRegistryPinned())
	assert.True(t, res1 != Resolver(), "resolver was not rebuilt")

	SetConfig(config.NewConfig(config.WithIndentWidth(8)))
	assert.True(t, custom == Registry(), "pinned registry was rebuilt")

	SetRegistry(nil)
	assert.True(t, custom == Registry())
}

func TestSetResolver_Pins(t *testing.T) {
	reset(t, newCountingBuilder())

	custom := builder.New().BuildResolver(Config(), Registry(), nil)
	SetResolver(custom)
	assert.True(t, IsResolverPinned())

	SetConfig(config.NewConfig(config.WithMaxUnwrap(2)))
	assert.True(t, custom == Resolver(), "pinned resolver was rebuilt")
	assert.True(t, custom == Meta().Resolver())
}

func TestSetRules_Pins(t *testing.T) {
	reset(t, builder.New())

	custom := rules.NewTable()
	SetRules(custom)
	assert.True(t, IsRulesPinned())
	SetConfig(config.NewConfig(config.WithIndentWidth(3)))
	assert.True(t, custom == Rules())

	_, err := Export(reflection.NewClass("DateTime"))
	require.Error(t, err, "an empty pinned table has no rules for ReflectionClass")
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	reset(t, builder.New())

	PinRegistry()
	reg := Registry()
	res := Resolver()

	b := newCountingBuilder()
	SetBuilder(b)
	assert.True(t, b == Builder())
	assert.True(t, reg == Registry(), "pinned registry was rebuilt")
	assert.True(t, res != Resolver(), "resolver was not rebuilt")

	r, s, rt := b.counts()
	assert.Equal(t, 0, r)
	assert.Equal(t, 1, s)
	assert.Equal(t, 1, rt)

	SetBuilder(nil)
	assert.True(t, b == Builder())
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	reset(t, builder.New())

	PinRegistry()
	PinResolver()
	PinRules()
	reg, res, rt := Registry(), Resolver(), Rules()

	SetConfig(config.NewConfig(config.WithMaxUnwrap(5)))
	assert.True(t, reg == Registry())
	assert.True(t, res == Resolver())
	assert.True(t, rt == Rules())

	UnpinRegistry()
	UnpinResolver()
	UnpinRules()
	SetConfig(config.NewConfig(config.WithMaxUnwrap(6)))
	assert.True(t, reg != Registry())
	assert.True(t, res != Resolver())
	assert.True(t, rt != Rules())
}

func TestSetAll(t *testing.T) {
	reset(t, builder.New())

	cfg := config.NewConfig(config.WithExceptionClass("ReflectionException"), config.WithIndentWidth(2))
	reg := registry.New(cfg)
	b := newCountingBuilder()
	SetAll(&cfg, reg, nil, nil, b)

	assert.Equal(t, cfg, Config())
	assert.True(t, reg == Registry())
	assert.True(t, IsRegistryPinned())
	assert.False(t, IsResolverPinned())
	assert.True(t, b == Builder())

	r, s, rt := b.counts()
	assert.Equal(t, []int{0, 1, 1}, []int{r, s, rt})
}

func TestNilBuilderOutput_Panics(t *testing.T) {
	reset(t, builder.New())

	assert.PanicsWithValue(t, ErrNilRegistry, func() { SetBuilder(nilBuilder{}) })
	assert.True(t, Builder() != apis.Builder(nilBuilder{}), "failed rebuild must not be published")
}

func TestSetLogger_LogsRebuilds(t *testing.T) {
	reset(t, builder.New())

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	SetConfig(config.NewConfig(config.WithIndentWidth(2)))

	entries := logs.FilterMessage("snapshot rebuilt").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, int64(len(rules.Builtin().Classes())), entries[len(entries)-1].ContextMap()["classes"])
}

func TestClassOf_Concurrent_With_SetConfig(t *testing.T) {
	reset(t, builder.New())

	type token struct{}
	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < runtime.GOMAXPROCS(0)*4; i++ {
		g.Go(func() error {
			for j := 0; j < 500; j++ {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				_ = ClassOf(token{})
				_ = ClassOfType(reflect.TypeOf(token{}))
				if _, err := Export(reflection.NewClass("DateTime")); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(config.WithMaxUnwrap(4 + i%5)))
		}
		return nil
	})

	require.NoError(t, g.Wait())
}
