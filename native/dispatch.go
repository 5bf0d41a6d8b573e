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
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// ServeHTTP wraps r and w and dispatches them. Unhandled requests get a
// 404 problem detail and errors a problem detail with their status.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	res := NewResponse(w)
	res.SetRelations(a, req)
	if a.Enabled(settingPoweredBy) {
		w.Header().Set("X-Powered-By", "rivaas")
	}

	a.Handle(req, res, func(err error) { a.finalize(req, res, err) })
}

// finalize answers requests that left the pipeline without a response.
func (a *App) finalize(req web.Request, res web.Response, err error) {
	if res.HeadersSent() {
		if err != nil {
			a.logger.Error("handler failed after headers were sent",
				"method", req.Method(), "path", req.Path(), "error", err)
		}
		return
	}

	if err == nil || web.IsSentinel(err) {
		writeProblem(res, http.StatusNotFound, fmt.Errorf("%w: %s %s", ErrNotFound, req.Method(), req.Path()))
		return
	}
	a.logger.Warn("handler failed", "method", req.Method(), "path", req.Path(), "error", err)
	writeProblem(res, http.StatusInternalServerError, err)
}

// dispatch runs the layers matching one request. Each layer runs its
// handlers in order; a handler that does not call next ends the chain.
type dispatch struct {
	req    web.Request
	res    web.Response
	done   web.Next
	layers []*layer
	params map[string][]web.ParamHandler
	idx    int
	called map[string]string
}

// Handle dispatches req and res through the registered layers. done runs
// when the last layer passes the request on, or when a handler fails.
// An [web.ErrNextRouter] from any handler ends this application early.
func (a *App) Handle(req web.Request, res web.Response, done web.Next) {
	if done == nil {
		done = func(err error) { a.finalize(req, res, err) }
	}
	if facade.IsNil(req.App()) {
		req.SetRelations(a, res, done)
	}
	if facade.IsNil(res.App()) {
		res.SetRelations(a, req)
	}

	a.mu.RLock()
	d := &dispatch{
		req:    req,
		res:    res,
		done:   done,
		layers: slices.Clone(a.layers),
		params: maps.Clone(a.params),
		called: map[string]string{},
	}
	a.mu.RUnlock()

	d.next(nil)
}

func (d *dispatch) next(err error) {
	if err != nil && !errors.Is(err, web.ErrNextRoute) {
		d.done(err)
		return
	}

	for d.idx < len(d.layers) {
		l := d.layers[d.idx]
		d.idx++

		params, rest, ok := l.match(d.req.Method(), d.req.Path())
		if !ok {
			continue
		}
		if l.prefix {
			d.req.SetValue(restKey, rest)
		} else {
			method := l.method
			if method == "" {
				method = d.req.Method()
			}
			d.req.SetParams(params)
			d.req.SetRoute(&web.Route{
				Path:    l.path,
				Stack:   []web.Layer{l.describe()},
				Methods: map[string]bool{method: true},
			})
		}
		d.runParams(l, params, 0)

		return
	}

	d.done(nil)
}

// runParams calls the param handlers of every parameter in params once per
// value, then the layer handlers.
func (d *dispatch) runParams(l *layer, params map[string]string, i int) {
	names := slices.Sorted(maps.Keys(params))
	for ; i < len(names); i++ {
		name := names[i]
		fns := d.params[name]
		if len(fns) == 0 {
			continue
		}
		if seen, ok := d.called[name]; ok && seen == params[name] {
			continue
		}
		d.called[name] = params[name]
		d.runParam(l, params, fns, i, 0)

		return
	}
	d.runLayer(l, 0)
}

func (d *dispatch) runParam(l *layer, params map[string]string, fns []web.ParamHandler, nameIdx, fnIdx int) {
	if fnIdx == len(fns) {
		d.runParams(l, params, nameIdx+1)
		return
	}

	name := slices.Sorted(maps.Keys(params))[nameIdx]
	fns[fnIdx](d.req, d.res, func(err error) {
		if err != nil {
			d.next(err)
			return
		}
		d.runParam(l, params, fns, nameIdx, fnIdx+1)
	}, params[name], name)
}

func (d *dispatch) runLayer(l *layer, i int) {
	if i == len(l.handlers) {
		d.next(nil)
		return
	}

	l.handlers[i](d.req, d.res, func(err error) {
		switch {
		case errors.Is(err, web.ErrNextRoute):
			d.next(nil)
		case err != nil:
			d.next(err)
		default:
			d.runLayer(l, i+1)
		}
	})
}
