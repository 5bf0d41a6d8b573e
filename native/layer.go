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
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/httpmock/web"
)

// layer is one registered handler entry. Routes match the full path;
// middleware and mounts match a path prefix.
type layer struct {
	method   string
	path     string
	prefix   bool
	handlers []web.HandlerFunc
	mux      *chi.Mux
}

var paramPattern = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// chiPattern converts ":name" segments to chi's "{name}" syntax.
func chiPattern(path string) string {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	return paramPattern.ReplaceAllString(path, "{$1}")
}

var noop = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

func newLayer(method, path string, prefix bool, handlers []web.HandlerFunc) *layer {
	pattern := chiPattern(path)
	mux := chi.NewRouter()
	if prefix {
		base := strings.TrimSuffix(pattern, "/")
		if base != "" {
			mux.Handle(base, noop)
		}
		mux.Handle(base+"/*", noop)
	} else {
		mux.Handle(pattern, noop)
	}

	return &layer{
		method:   method,
		path:     path,
		prefix:   prefix,
		handlers: handlers,
		mux:      mux,
	}
}

// match reports whether the layer handles method and path. It returns the
// route parameters and, for prefix layers, the unmatched remainder.
func (l *layer) match(method, path string) (map[string]string, string, bool) {
	if l.method != "" && l.method != method && (l.method != http.MethodGet || method != http.MethodHead) {
		return nil, "", false
	}

	// Methods are filtered above; chi only matches the path.
	rctx := chi.NewRouteContext()
	if !l.mux.Match(rctx, http.MethodGet, path) {
		return nil, "", false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	rest := ""
	for i, k := range rctx.URLParams.Keys {
		if k == "*" {
			rest = rctx.URLParams.Values[i]
			continue
		}
		params[k] = rctx.URLParams.Values[i]
	}
	if l.prefix {
		rest = "/" + rest
	}

	return params, rest, true
}

func (l *layer) describe() web.Layer {
	return web.Layer{Method: l.method, Path: l.path}
}
