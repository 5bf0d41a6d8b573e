// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package application

import (
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/spf13/cast"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

const kind = "application"

// Option configures an application facade.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger receiving facade warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Application is the application facade.
type Application struct {
	*facade.Base[web.Application]

	fake      bool
	locals    map[string]any
	settings  map[string]any
	mountPath string
	stack     []web.Layer
}

var _ web.Application = (*Application)(nil)

var shared atomic.Pointer[Application]

func newApplication(opts []Option) *Application {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Application{Base: facade.NewBase[web.Application](kind, cfg.logger)}
}

// New creates an unshared synthetic application.
func New(opts ...Option) *Application {
	a := newApplication(opts)
	a.fake = true
	a.locals = map[string]any{}
	a.settings = map[string]any{}
	a.stack = []web.Layer{}
	a.Touch()

	return a
}

// Fake returns the shared synthetic application, creating it on first use.
func Fake() *Application {
	if a := shared.Load(); a != nil {
		return a
	}
	if a := New(); shared.CompareAndSwap(nil, a) {
		return a
	}

	return shared.Load()
}

// ResetFake drops the shared synthetic application. The next call to [Fake]
// creates a new one.
func ResetFake() { shared.Store(nil) }

// Clone wraps app in an origin-backed facade. A facade is returned
// unchanged and nil yields [Fake].
func Clone(app web.Application, opts ...Option) web.Application {
	if f, ok := app.(*Application); ok && f != nil {
		return f
	}
	if facade.IsNil(app) {
		return Fake()
	}

	a := newApplication(opts)
	if err := a.SetOrigin(app); err != nil {
		a.Logger().Warn("bind failed", "kind", kind, "error", err)
	}

	return a
}

// IsFake reports whether the application has no real backing.
func (a *Application) IsFake() bool {
	if o, ok := a.Origin(); ok {
		return o.IsFake()
	}

	return a.fake
}

// Locals returns the application locals.
func (a *Application) Locals() map[string]any {
	if o, ok := a.Origin(); ok {
		return o.Locals()
	}

	return a.locals
}

// SetLocals replaces the application locals.
func (a *Application) SetLocals(locals map[string]any) {
	if o, ok := a.Origin(); ok {
		o.SetLocals(locals)
		return
	}
	a.locals = locals
}

// Settings returns the settings table.
func (a *Application) Settings() map[string]any {
	if o, ok := a.Origin(); ok {
		return o.Settings()
	}

	return a.settings
}

// SetSettings replaces the settings table.
func (a *Application) SetSettings(settings map[string]any) {
	if o, ok := a.Origin(); ok {
		o.SetSettings(settings)
		return
	}
	a.settings = settings
}

// Setting returns the value of the named setting, nil when unset.
func (a *Application) Setting(name string) any {
	if o, ok := a.Origin(); ok {
		return o.Setting(name)
	}

	return a.settings[name]
}

// Set assigns a setting.
func (a *Application) Set(name string, value any) web.Application {
	if o, ok := a.Origin(); ok {
		o.Set(name, value)
		return a
	}
	if a.settings == nil {
		a.settings = map[string]any{}
	}
	a.settings[name] = value

	return a
}

// Enable sets the setting name to true. Synthetic applications log and ignore it.
func (a *Application) Enable(name string) web.Application {
	if o, ok := a.Origin(); ok {
		o.Enable(name)
		return a
	}
	a.ShouldNotCall("enable", "setting", name)

	return a
}

// Disable sets the setting name to false. Synthetic applications log and ignore it.
func (a *Application) Disable(name string) web.Application {
	if o, ok := a.Origin(); ok {
		o.Disable(name)
		return a
	}
	a.ShouldNotCall("disable", "setting", name)

	return a
}

// Enabled reports whether the named setting is truthy.
func (a *Application) Enabled(name string) bool {
	if o, ok := a.Origin(); ok {
		return o.Enabled(name)
	}

	return cast.ToBool(a.settings[name])
}

// Disabled reports whether the setting name is falsy.
func (a *Application) Disabled(name string) bool {
	if o, ok := a.Origin(); ok {
		return o.Disabled(name)
	}

	return !a.Enabled(name)
}

// MountPath returns the path the application is mounted on.
func (a *Application) MountPath() string {
	if o, ok := a.Origin(); ok {
		return o.MountPath()
	}

	return a.mountPath
}

// Path returns the canonical path of a wrapped application, "" otherwise.
func (a *Application) Path() string {
	if o, ok := a.Origin(); ok {
		return o.Path()
	}

	return ""
}

// Stack returns the middleware layers.
func (a *Application) Stack() []web.Layer {
	if o, ok := a.Origin(); ok {
		return o.Stack()
	}

	return a.stack
}

// SetStack replaces the middleware layers.
func (a *Application) SetStack(stack []web.Layer) {
	if o, ok := a.Origin(); ok {
		o.SetStack(stack)
		return
	}
	a.stack = slices.Clone(stack)
}

// Snapshot returns a copy of the locals and settings of the application.
func (a *Application) Snapshot() (locals, settings map[string]any) {
	return maps.Clone(a.Locals()), maps.Clone(a.Settings())
}
