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

package native

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// Well-known settings.
const (
	settingEnv           = "env"
	settingViews         = "views"
	settingViewEngine    = "view engine"
	settingJSONPCallback = "jsonp callback name"
	settingPoweredBy     = "x-powered-by"
)

const baseURLKey = "native.baseUrl"

var (
	// ErrNotFound is reported when no route finalizes a request.
	ErrNotFound = errors.New("native: no route matched")

	// ErrNoEngine is reported by Render when no engine handles the view.
	ErrNoEngine = errors.New("native: no view engine")
)

// AppOption configures an [App].
type AppOption func(*App)

// WithAppLogger sets the logger used for dispatch failures.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(a *App) { a.logger = logger }
}

// WithShutdownTimeout bounds how long Close waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) AppOption {
	return func(a *App) { a.shutdownTimeout = d }
}

// App is a small express-style application on net/http. Routes, middleware
// and mounts run in registration order; chi matches the paths.
type App struct {
	*facade.Emitter
	*facade.Properties

	logger          *slog.Logger
	shutdownTimeout time.Duration

	mu        sync.RWMutex
	layers    []*layer
	params    map[string][]web.ParamHandler
	engines   map[string]web.RenderFunc
	locals    map[string]any
	settings  map[string]any
	mountPath string
	parent    *App
	server    *http.Server
}

var _ web.Application = (*App)(nil)

// NewApp creates an application with default settings.
func NewApp(opts ...AppOption) *App {
	a := &App{
		Emitter:         facade.NewEmitter(nil),
		Properties:      facade.NewProperties(nil),
		logger:          facade.DiscardLogger(),
		shutdownTimeout: 10 * time.Second,
		params:          map[string][]web.ParamHandler{},
		engines:         map[string]web.RenderFunc{},
		locals:          map[string]any{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Init()

	return a
}

// Init resets the settings to their defaults.
func (a *App) Init() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settings = map[string]any{
		settingEnv:           "development",
		settingViews:         "views",
		settingJSONPCallback: "callback",
		settingPoweredBy:     true,
	}
}

func (a *App) IsFake() bool { return false }

func (a *App) Locals() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.locals
}

func (a *App) SetLocals(locals map[string]any) {
	a.mu.Lock()
	a.locals = locals
	a.mu.Unlock()
}

func (a *App) Settings() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.settings
}

func (a *App) SetSettings(settings map[string]any) {
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()
}

// Setting returns the named setting, inherited from the parent application
// when unset on a mounted one.
func (a *App) Setting(name string) any {
	a.mu.RLock()
	v, ok := a.settings[name]
	parent := a.parent
	a.mu.RUnlock()
	if !ok && parent != nil {
		return parent.Setting(name)
	}

	return v
}

func (a *App) settingString(name string) string { return cast.ToString(a.Setting(name)) }

func (a *App) Set(name string, value any) web.Application {
	a.mu.Lock()
	if a.settings == nil {
		a.settings = map[string]any{}
	}
	a.settings[name] = value
	a.mu.Unlock()

	return a
}

func (a *App) Enable(name string) web.Application  { return a.Set(name, true) }
func (a *App) Disable(name string) web.Application { return a.Set(name, false) }
func (a *App) Enabled(name string) bool            { return cast.ToBool(a.Setting(name)) }
func (a *App) Disabled(name string) bool           { return !a.Enabled(name) }

func (a *App) MountPath() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.mountPath
}

// Path returns the full mount path, including every parent.
func (a *App) Path() string {
	a.mu.RLock()
	parent, mount := a.parent, a.mountPath
	a.mu.RUnlock()
	if parent == nil {
		return strings.TrimSuffix(mount, "/")
	}

	return parent.Path() + strings.TrimSuffix(mount, "/")
}

func (a *App) Stack() []web.Layer {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]web.Layer, 0, len(a.layers))
	for _, l := range a.layers {
		out = append(out, l.describe())
	}

	return out
}

// SetStack reorders the registered layers to follow stack. Layers missing
// from stack are dropped; entries without a registered layer are ignored.
func (a *App) SetStack(stack []web.Layer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := a.layers
	kept := make([]*layer, 0, len(stack))
	for _, want := range stack {
		for i, l := range remaining {
			if l.describe() == want {
				kept = append(kept, l)
				remaining = append(remaining[:i:i], remaining[i+1:]...)
				break
			}
		}
	}
	a.layers = kept
}

func (a *App) add(l *layer) web.Application {
	a.mu.Lock()
	a.layers = append(a.layers, l)
	a.mu.Unlock()

	return a
}

func (a *App) route(method, path string, handlers []web.HandlerFunc) web.Application {
	return a.add(newLayer(method, path, false, handlers))
}

func (a *App) Get(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodGet, path, h)
}

func (a *App) Post(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodPost, path, h)
}

func (a *App) Put(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodPut, path, h)
}

func (a *App) Delete(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodDelete, path, h)
}

func (a *App) Patch(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodPatch, path, h)
}

func (a *App) Head(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodHead, path, h)
}

func (a *App) Options(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodOptions, path, h)
}

func (a *App) Connect(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodConnect, path, h)
}

func (a *App) Trace(path string, h ...web.HandlerFunc) web.Application {
	return a.route(http.MethodTrace, path, h)
}

// All registers handlers for every method.
func (a *App) All(path string, h ...web.HandlerFunc) web.Application {
	return a.route("", path, h)
}

func (a *App) Method(method, path string, h ...web.HandlerFunc) web.Application {
	return a.route(strings.ToUpper(method), path, h)
}

// Use registers middleware for every path.
func (a *App) Use(h ...web.HandlerFunc) web.Application {
	return a.UseAt("/", h...)
}

// UseAt registers middleware for path and everything below it.
func (a *App) UseAt(path string, h ...web.HandlerFunc) web.Application {
	return a.add(newLayer("", path, true, h))
}

// Mount dispatches everything below path to sub. The mount prefix is
// stripped from the request URL while sub runs.
func (a *App) Mount(path string, sub web.Application) web.Application {
	if s, ok := sub.(*App); ok {
		s.mu.Lock()
		s.parent = a
		s.mountPath = path
		s.mu.Unlock()
	}

	mounted := func(req web.Request, res web.Response, next web.Next) {
		full := req.URL()
		query := rawQuery(full)
		v, _ := req.Value(restKey)
		rest := cast.ToString(v)
		base := strings.TrimSuffix(strings.TrimSuffix(full, query), rest)
		prev, _ := req.Value(baseURLKey)

		req.SetURL(rest + query)
		req.SetValue(baseURLKey, cast.ToString(prev)+base)
		sub.Handle(req, res, func(err error) {
			req.SetURL(full)
			req.SetValue(baseURLKey, prev)
			if errors.Is(err, web.ErrNextRouter) {
				err = nil
			}
			next(err)
		})
	}

	return a.add(newLayer("", path, true, []web.HandlerFunc{mounted}))
}

const restKey = "native.rest"

func rawQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[i:]
	}

	return ""
}

// Param registers fn for routes declaring the parameter name. It runs once
// per request and value, before the route handlers.
func (a *App) Param(name string, fn web.ParamHandler) web.Application {
	a.mu.Lock()
	a.params[name] = append(a.params[name], fn)
	a.mu.Unlock()

	return a
}

// Engine registers fn for views with extension ext.
func (a *App) Engine(ext string, fn web.RenderFunc) web.Application {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	a.mu.Lock()
	a.engines[ext] = fn
	a.mu.Unlock()

	return a
}

// Render looks view up under the "views" setting and renders it with the
// engine for its extension, or for the "view engine" setting.
func (a *App) Render(view string, locals map[string]any, fn web.RenderCallback) {
	ext := filepath.Ext(view)
	if ext == "" {
		ext = a.settingString(settingViewEngine)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		view += ext
	}

	a.mu.RLock()
	engine := a.engines[ext]
	merged := maps.Clone(a.locals)
	a.mu.RUnlock()
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, locals)

	if engine == nil {
		fn("", fmt.Errorf("%w for %q", ErrNoEngine, view))
		return
	}

	path := view
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.settingString(settingViews), view)
	}
	out, err := engine(path, merged)
	fn(out, err)
}

// Listen serves the application on addr until Close is called.
func (a *App) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.mu.Lock()
	a.server = srv
	a.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Close gracefully stops a server started by Listen.
func (a *App) Close(ctx context.Context) error {
	a.mu.RLock()
	srv := a.server
	a.mu.RUnlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
