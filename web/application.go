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

package web

import (
	"context"
	"net/http"
)

// Application is the top-level route registration object.
type Application interface {
	Carrier
	http.Handler

	// IsFake reports whether the application has no real backing.
	IsFake() bool

	Locals() map[string]any
	SetLocals(locals map[string]any)
	Settings() map[string]any
	SetSettings(settings map[string]any)

	// Setting returns the value of a setting, nil when unset.
	Setting(name string) any
	Set(name string, value any) Application
	Enable(name string) Application
	Disable(name string) Application
	Enabled(name string) bool
	Disabled(name string) bool

	// MountPath returns the pattern the application was mounted on.
	MountPath() string

	// Path returns the canonical path of the application.
	Path() string
	Stack() []Layer
	SetStack(stack []Layer)

	Get(path string, handlers ...HandlerFunc) Application
	Post(path string, handlers ...HandlerFunc) Application
	Put(path string, handlers ...HandlerFunc) Application
	Delete(path string, handlers ...HandlerFunc) Application
	Patch(path string, handlers ...HandlerFunc) Application
	Head(path string, handlers ...HandlerFunc) Application
	Options(path string, handlers ...HandlerFunc) Application
	Connect(path string, handlers ...HandlerFunc) Application
	Trace(path string, handlers ...HandlerFunc) Application
	All(path string, handlers ...HandlerFunc) Application
	Method(method, path string, handlers ...HandlerFunc) Application
	Use(handlers ...HandlerFunc) Application
	UseAt(path string, handlers ...HandlerFunc) Application
	Mount(path string, sub Application) Application
	Param(name string, fn ParamHandler) Application

	Engine(ext string, fn RenderFunc) Application
	Render(view string, locals map[string]any, fn RenderCallback)

	// Handle dispatches req and res through the application pipeline.
	// next runs when no route finalizes the response.
	Handle(req Request, res Response, next Next)

	Init()
	Listen(addr string) error
	Close(ctx context.Context) error
}
