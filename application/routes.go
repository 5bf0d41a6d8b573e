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
	"context"
	"net/http"

	"rivaas.dev/httpmock/web"
)

// route forwards a registration to the origin, or logs it on a synthetic
// application. The registration itself is dropped in that case.
func (a *Application) route(fn string, forward func(web.Application), attrs ...any) web.Application {
	if o, ok := a.Origin(); ok {
		forward(o)
		return a
	}
	a.ShouldNotCall(fn, attrs...)

	return a
}

func (a *Application) Get(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("get", func(o web.Application) { o.Get(path, handlers...) }, "path", path)
}

func (a *Application) Post(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("post", func(o web.Application) { o.Post(path, handlers...) }, "path", path)
}

func (a *Application) Put(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("put", func(o web.Application) { o.Put(path, handlers...) }, "path", path)
}

func (a *Application) Delete(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("delete", func(o web.Application) { o.Delete(path, handlers...) }, "path", path)
}

func (a *Application) Patch(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("patch", func(o web.Application) { o.Patch(path, handlers...) }, "path", path)
}

func (a *Application) Head(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("head", func(o web.Application) { o.Head(path, handlers...) }, "path", path)
}

func (a *Application) Options(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("options", func(o web.Application) { o.Options(path, handlers...) }, "path", path)
}

func (a *Application) Connect(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("connect", func(o web.Application) { o.Connect(path, handlers...) }, "path", path)
}

func (a *Application) Trace(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("trace", func(o web.Application) { o.Trace(path, handlers...) }, "path", path)
}

func (a *Application) All(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("all", func(o web.Application) { o.All(path, handlers...) }, "path", path)
}

func (a *Application) Method(method, path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("method", func(o web.Application) { o.Method(method, path, handlers...) },
		"method", method, "path", path)
}

func (a *Application) Use(handlers ...web.HandlerFunc) web.Application {
	return a.route("use", func(o web.Application) { o.Use(handlers...) })
}

func (a *Application) UseAt(path string, handlers ...web.HandlerFunc) web.Application {
	return a.route("use", func(o web.Application) { o.UseAt(path, handlers...) }, "path", path)
}

func (a *Application) Mount(path string, sub web.Application) web.Application {
	return a.route("mount", func(o web.Application) { o.Mount(path, sub) }, "path", path)
}

func (a *Application) Param(name string, fn web.ParamHandler) web.Application {
	return a.route("param", func(o web.Application) { o.Param(name, fn) }, "param", name)
}

func (a *Application) Engine(ext string, fn web.RenderFunc) web.Application {
	return a.route("engine", func(o web.Application) { o.Engine(ext, fn) }, "ext", ext)
}

// Render forwards to the origin. A synthetic application never invokes fn.
func (a *Application) Render(view string, locals map[string]any, fn web.RenderCallback) {
	if o, ok := a.Origin(); ok {
		o.Render(view, locals, fn)
		return
	}
	a.ShouldNotCall("render", "view", view)
}

// Handle forwards to the origin. A synthetic application has no routes and
// leaves res untouched.
func (a *Application) Handle(req web.Request, res web.Response, next web.Next) {
	if o, ok := a.Origin(); ok {
		o.Handle(req, res, next)
		return
	}
	a.ShouldNotCall("handle")
}

// ServeHTTP forwards to the origin. A synthetic application answers
// 501 Not Implemented.
func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if o, ok := a.Origin(); ok {
		o.ServeHTTP(w, r)
		return
	}
	a.ShouldNotCall("serveHTTP", "path", r.URL.Path)
	http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
}

func (a *Application) Init() {
	if o, ok := a.Origin(); ok {
		o.Init()
		return
	}
	a.ShouldNotCall("init")
}

func (a *Application) Listen(addr string) error {
	if o, ok := a.Origin(); ok {
		return o.Listen(addr)
	}
	a.ShouldNotCall("listen", "addr", addr)

	return nil
}

func (a *Application) Close(ctx context.Context) error {
	if o, ok := a.Origin(); ok {
		return o.Close(ctx)
	}
	a.ShouldNotCall("close")

	return nil
}
