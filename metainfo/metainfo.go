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

package metainfo

import (
	"go.uber.org/zap"

	"dirpx.dev/reflequiv/apis"
	"dirpx.dev/reflequiv/config"
	"dirpx.dev/reflequiv/resolver"
	"dirpx.dev/reflequiv/rules"
	"dirpx.dev/reflequiv/strategy"
)

// MetaInfo answers class-name questions and builds representations.
// It is immutable after New and safe for concurrent use.
type MetaInfo struct {
	cfg   apis.Config
	res   apis.Resolver
	rules apis.RuleTable
	log   *zap.Logger
	pat   *patterns
}

type options struct {
	cfg   apis.Config
	res   apis.Resolver
	rules apis.RuleTable
	log   *zap.Logger
}

// Option configures a MetaInfo.
type Option func(*options)

// WithConfig sets the configuration. Zero fields take their defaults.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithResolver sets the resolver used to name objects.
func WithResolver(res apis.Resolver) Option {
	return func(o *options) { o.res = res }
}

// WithRules sets the rule table. The builtin table is used by default.
func WithRules(rt apis.RuleTable) Option {
	return func(o *options) { o.rules = rt }
}

// WithLogger sets the logger. Fallback dispatch is logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// New returns a MetaInfo.
func New(opts ...Option) *MetaInfo {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.res == nil {
		o.res = resolver.New(strategy.NewClasserStrategy(), strategy.NewReflectStrategy())
	}
	if o.rules == nil {
		o.rules = rules.Builtin()
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	cfg := config.Sanitize(o.cfg)
	return &MetaInfo{
		cfg:   cfg,
		res:   o.res,
		rules: o.rules,
		log:   o.log.Named("metainfo"),
		pat:   compilePatterns(cfg.ParsedNamespace),
	}
}

// Config returns the sanitized configuration.
func (m *MetaInfo) Config() apis.Config { return m.cfg }

// Resolver returns the resolver used to name objects.
func (m *MetaInfo) Resolver() apis.Resolver { return m.res }

// Rules returns the rule table.
func (m *MetaInfo) Rules() apis.RuleTable { return m.rules }

// ClassOf returns the resolved class name of v.
func (m *MetaInfo) ClassOf(v any) string {
	return m.res.Resolve(v, m.cfg)
}

// IsReflection reports whether v belongs to the reflection family: its
// class is a native or a parsed reflection class.
func (m *MetaInfo) IsReflection(v any) bool {
	if v == nil {
		return false
	}
	class := m.ClassOf(v)
	return class != "" && (m.IsNativeClass(class) || m.IsParsedClass(class))
}

// CanonicalClass returns the class label under which v is exported:
// the parsed class for native reflection objects, the resolved class
// for everything else.
func (m *MetaInfo) CanonicalClass(v any) string {
	class := m.ClassOf(v)
	if parsed, err := m.ParsedClass(class); err == nil {
		return parsed
	}
	return class
}
