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

package httpmock

import (
	"io"
	"iter"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"rivaas.dev/httpmock/application"
	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/request"
	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/service"
	"rivaas.dev/httpmock/web"
)

// slot holds one value. The first set wins.
type slot[T any] struct {
	p atomic.Pointer[holder[T]]
}

type holder[T any] struct{ v T }

func (s *slot[T]) set(v T) bool { return s.p.CompareAndSwap(nil, &holder[T]{v: v}) }

func (s *slot[T]) get() (T, bool) {
	h := s.p.Load()
	if h == nil {
		var zero T
		return zero, false
	}

	return h.v, true
}

// Origins keeps the first real request, response and application observed.
// Each slot is written at most once; later writes are ignored.
type Origins struct {
	req slot[web.Request]
	res slot[web.Response]
	app slot[web.Application]
}

// NewOrigins creates empty first-origin slots.
func NewOrigins() *Origins { return &Origins{} }

// Init captures req, its response and a facade of its application. Slots
// already filled keep their value. It reports whether the request slot was
// filled by this call.
func (o *Origins) Init(req web.Request) bool {
	if facade.IsNil(req) {
		return false
	}

	if res := req.Res(); !facade.IsNil(res) {
		o.res.set(res)
	}
	if app := req.App(); !facade.IsNil(app) {
		o.app.set(application.Clone(app))
	}

	return o.req.set(&firstRequest{Request: req})
}

// Fork returns the captured triple. Members not captured yet are nil.
func (o *Origins) Fork() (web.Request, web.Response, web.Application) {
	req, _ := o.req.get()
	res, _ := o.res.get()
	app, _ := o.app.get()

	return req, res, app
}

// Captured reports whether a first request was captured.
func (o *Origins) Captured() bool {
	_, ok := o.req.get()
	return ok
}

// Init captures the first origins of req. See [Origins.Init].
func (m *Mock) Init(req web.Request) bool { return m.origins.Init(req) }

// Fork returns the captured first origins. See [Origins.Fork].
func (m *Mock) Fork() (web.Request, web.Response, web.Application) { return m.origins.Fork() }

// ForBulk captures req as first origin when none is captured yet, then
// builds a synthetic call from svc seeded by the captured triple. The call
// uses the captured application facade itself.
func (m *Mock) ForBulk(req web.Request, svc *service.Descriptor, resolver response.Resolver, custom map[string]any) *Call {
	m.origins.Init(req)

	return m.forkCall(modeBulk, svc, resolver, custom, nil)
}

func (m *Mock) forkCall(
	mode string, svc *service.Descriptor, resolver response.Resolver, custom map[string]any, next web.Next,
) *Call {
	firstReq, firstRes, firstApp := m.origins.Fork()

	r := request.Fake(svc, firstReq, request.WithLogger(m.logger), request.WithCustom(custom))
	w := m.FakeResponse(resolver, firstRes)
	app := firstApp
	if facade.IsNil(app) {
		app = m.CloneApp(r.App())
	}

	return m.wire(mode, r, w, app, next)
}

// Capture returns a middleware that captures the first request it sees as
// first origin and passes every request on unchanged.
func (m *Mock) Capture() web.HandlerFunc {
	return func(req web.Request, _ web.Response, next web.Next) {
		if !m.origins.Captured() {
			m.origins.Init(req)
		}
		next(nil)
	}
}

// firstRequest is the view kept of a captured request. It hides every
// per-call field and ignores writes to them, so calls derived from it only
// see the ambient fields of the real request. Negotiation answers as for a
// request without headers and the body stream is always drained.
type firstRequest struct {
	web.Request
}

func (r *firstRequest) Method() string                     { return "" }
func (r *firstRequest) SetMethod(string)                   {}
func (r *firstRequest) URL() string                        { return "" }
func (r *firstRequest) SetURL(string)                      {}
func (r *firstRequest) OriginalURL() string                { return "" }
func (r *firstRequest) Path() string                       { return "" }
func (r *firstRequest) Body() any                          { return nil }
func (r *firstRequest) SetBody(any)                        {}
func (r *firstRequest) Headers() http.Header               { return http.Header{} }
func (r *firstRequest) SetHeaders(http.Header)             {}
func (r *firstRequest) Header(string) string               { return "" }
func (r *firstRequest) Get(string) string                  { return "" }
func (r *firstRequest) Cookies() map[string]string         { return map[string]string{} }
func (r *firstRequest) SetCookies(map[string]string)       {}
func (r *firstRequest) SignedCookies() map[string]string   { return map[string]string{} }
func (r *firstRequest) SetSignedCookies(map[string]string) {}
func (r *firstRequest) Params() map[string]string          { return map[string]string{} }
func (r *firstRequest) SetParams(map[string]string)        {}
func (r *firstRequest) Param(_, def string) string         { return def }
func (r *firstRequest) Query() url.Values                  { return url.Values{} }
func (r *firstRequest) SetQuery(url.Values)                {}
func (r *firstRequest) Route() *web.Route                  { return nil }
func (r *firstRequest) SetRoute(*web.Route)                {}
func (r *firstRequest) Next() web.Next                     { return nil }

func (r *firstRequest) Fresh() bool                            { return false }
func (r *firstRequest) Stale() bool                            { return true }
func (r *firstRequest) XHR() bool                              { return false }
func (r *firstRequest) Is(...string) string                    { return "" }
func (r *firstRequest) Accepts(...string) string               { return "" }
func (r *firstRequest) AcceptsCharsets(...string) string       { return "" }
func (r *firstRequest) AcceptsEncodings(...string) string      { return "" }
func (r *firstRequest) AcceptsLanguages(...string) string      { return "" }
func (r *firstRequest) Range(int64, bool) (*web.Ranges, error) { return nil, nil }

func (r *firstRequest) Read([]byte) (int, error)                        { return 0, io.EOF }
func (r *firstRequest) Pipe(io.Writer) (int64, error)                   { return 0, nil }
func (r *firstRequest) Collect() [][]byte                               { return nil }
func (r *firstRequest) Chunks() iter.Seq[[]byte]                        { return noChunks }
func (r *firstRequest) Map(func([]byte) []byte) iter.Seq[[]byte]        { return noChunks }
func (r *firstRequest) Filter(func([]byte) bool) iter.Seq[[]byte]       { return noChunks }
func (r *firstRequest) Reduce(_ func(any, []byte) any, initial any) any { return initial }
func (r *firstRequest) Push([]byte) bool                                { return false }
func (r *firstRequest) Unshift([]byte)                                  {}
func (r *firstRequest) IsPaused() bool                                  { return false }
func (r *firstRequest) Destroyed() bool                                 { return false }

func (r *firstRequest) Pause() web.Request                           { return r }
func (r *firstRequest) Resume() web.Request                          { return r }
func (r *firstRequest) SetEncoding(string) web.Request               { return r }
func (r *firstRequest) SetTimeout(time.Duration, func()) web.Request { return r }
func (r *firstRequest) Destroy(error) web.Request                    { return r }

func (r *firstRequest) SetRelations(web.Application, web.Response, web.Next) {}

func noChunks(func([]byte) bool) {}
