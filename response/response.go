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

package response

import (
	"log/slog"
	"maps"
	"net/http"
	"time"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

const kind = "response"

// Option configures a response facade.
type Option func(*config)

type config struct {
	logger *slog.Logger
	lookup web.MIMELookup
	now    func() time.Time
}

// WithLogger sets the logger receiving facade warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMIMELookup replaces the lookup used by Type and ContentType for names
// without a slash.
func WithMIMELookup(lookup web.MIMELookup) Option {
	return func(c *config) { c.lookup = lookup }
}

// Response is the response facade. Use [Fake] or [Clone] to create one.
type Response struct {
	*facade.Base[web.Response]

	fake     bool
	resolver Resolver
	lookup   web.MIMELookup
	now      func() time.Time
	started  time.Time

	sent          bool
	status        int
	statusMessage string
	charset       string
	headers       http.Header
	cookies       map[string]web.Cookie
	cleared       map[string]*web.CookieOptions
	data          any
	locals        map[string]any

	related bool
	app     web.Application
	req     web.Request
}

var _ web.Response = (*Response)(nil)

func newResponse(opts []Option) *Response {
	cfg := &config{lookup: web.LookupMIME, now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.lookup == nil {
		cfg.lookup = web.LookupMIME
	}

	return &Response{
		Base:   facade.NewBase[web.Response](kind, cfg.logger),
		lookup: cfg.lookup,
		now:    cfg.now,
	}
}

// Fake builds a synthetic response delivering its outcome to resolver.
// A nil resolver discards the outcome. When origin is not nil its locals are
// copied as the starting locals.
func Fake(resolver Resolver, origin web.Response, opts ...Option) *Response {
	r := newResponse(opts)
	if resolver == nil {
		resolver = func(*Prepared) {}
	}
	r.fake = true
	r.resolver = resolver
	r.started = r.now()
	r.locals = map[string]any{}
	if !facade.IsNil(origin) {
		maps.Copy(r.locals, origin.Locals())
		r.app = origin.App()
	}
	r.clear()
	r.Touch()

	return r
}

// Clone wraps res in an origin-backed facade. A facade is returned unchanged;
// nil yields a synthetic response with no resolver.
func Clone(res web.Response, opts ...Option) web.Response {
	if f, ok := res.(*Response); ok && f != nil {
		return f
	}
	if facade.IsNil(res) {
		return Fake(nil, nil, opts...)
	}

	r := newResponse(opts)
	if err := r.SetOrigin(res); err != nil {
		r.Logger().Warn("bind failed", "kind", kind, "error", err)
	}

	return r
}

func (r *Response) clear() {
	r.status = http.StatusOK
	r.statusMessage = ""
	r.headers = http.Header{}
	r.cookies = map[string]web.Cookie{}
	r.cleared = map[string]*web.CookieOptions{}
	r.data = nil
}

// finalize seals the response and runs the resolver. It does nothing once the
// response is sent.
func (r *Response) finalize(data any) {
	if r.sent {
		return
	}
	r.sent = true
	if data != nil {
		r.data = data
	}

	p := &Prepared{
		Status:         r.status,
		StatusMessage:  r.statusMessage,
		Headers:        cloneHeader(r.headers),
		Cookies:        cloneCookies(r.cookies),
		ClearedCookies: cloneCleared(r.cleared),
		Data:           r.data,
		Locals:         cloneLocals(r.locals),
		Duration:       r.now().Sub(r.started),
	}
	r.resolver(p)
	r.Emit(web.EventFinish, p)
}

// sealed reports whether the response was already sent. The dropped
// mutation fn is logged.
func (r *Response) sealed(fn string) bool {
	if r.sent {
		r.Logger().Warn("write after send", "kind", kind, "fn", fn)
	}

	return r.sent
}

// IsFake reports whether the response is captured instead of written.
func (r *Response) IsFake() bool {
	if o, ok := r.Origin(); ok {
		return o.IsFake()
	}

	return r.fake
}

// SetRelations wires the application and request. Only the first call has an effect.
func (r *Response) SetRelations(app web.Application, req web.Request) {
	if r.related {
		return
	}
	r.related = true
	if !facade.IsNil(app) {
		r.app = app
	}
	r.req = req
}

// App returns the owning application.
func (r *Response) App() web.Application {
	if o, ok := r.Origin(); ok && !r.related {
		return o.App()
	}

	return r.app
}

// Req returns the paired request.
func (r *Response) Req() web.Request {
	if o, ok := r.Origin(); ok && !r.related {
		return o.Req()
	}

	return r.req
}

// Locals returns the response locals.
func (r *Response) Locals() map[string]any {
	if o, ok := r.Origin(); ok {
		return o.Locals()
	}

	return r.locals
}

// HeadersSent reports whether a terminating call happened.
func (r *Response) HeadersSent() bool {
	if o, ok := r.Origin(); ok {
		return o.HeadersSent()
	}

	return r.sent
}

// StatusCode returns the staged status, 200 unless set.
func (r *Response) StatusCode() int {
	if o, ok := r.Origin(); ok {
		return o.StatusCode()
	}

	return r.status
}

// StatusMessage returns the reason phrase.
func (r *Response) StatusMessage() string {
	if o, ok := r.Origin(); ok {
		return o.StatusMessage()
	}

	return r.statusMessage
}

// SetStatusMessage sets the reason phrase.
func (r *Response) SetStatusMessage(msg string) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetStatusMessage(msg)
		return r
	}
	if r.sealed("setStatusMessage") {
		return r
	}
	r.statusMessage = msg

	return r
}

// Charset returns the charset of the Content-Type.
func (r *Response) Charset() string {
	if o, ok := r.Origin(); ok {
		return o.Charset()
	}

	return r.charset
}

// SetCharset sets the charset of the Content-Type.
func (r *Response) SetCharset(charset string) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetCharset(charset)
		return r
	}
	if r.sealed("setCharset") {
		return r
	}
	r.charset = charset

	return r
}

// Send finalizes the response with body. A nil body keeps the staged data.
func (r *Response) Send(body any) web.Response {
	if o, ok := r.Origin(); ok {
		o.Send(body)
		return r
	}
	r.finalize(body)

	return r
}

// JSON sets Content-Type to application/json and finalizes with body.
func (r *Response) JSON(body any) web.Response {
	if o, ok := r.Origin(); ok {
		o.JSON(body)
		return r
	}
	if !r.sent {
		r.headers.Set("Content-Type", "application/json")
	}
	r.finalize(body)

	return r
}

// JSONP behaves like JSON. Synthetic responses have no callback to wrap.
func (r *Response) JSONP(body any) web.Response {
	if o, ok := r.Origin(); ok {
		o.JSONP(body)
		return r
	}

	return r.JSON(body)
}

// YAML sets Content-Type to application/x-yaml and finalizes with body.
func (r *Response) YAML(body any) web.Response {
	if o, ok := r.Origin(); ok {
		o.YAML(body)
		return r
	}
	if !r.sent {
		r.headers.Set("Content-Type", "application/x-yaml")
	}
	r.finalize(body)

	return r
}

// SendStatus sets the status and finalizes without a body.
func (r *Response) SendStatus(code int) web.Response {
	if o, ok := r.Origin(); ok {
		o.SendStatus(code)
		return r
	}
	if !r.sent {
		r.status = code
	}
	r.finalize(nil)

	return r
}

// End drops every staged value, then finalizes.
func (r *Response) End() web.Response {
	if o, ok := r.Origin(); ok {
		o.End()
		return r
	}
	if !r.sent {
		r.clear()
	}
	r.finalize(nil)

	return r
}

// Status sets the status code.
func (r *Response) Status(code int) web.Response {
	if o, ok := r.Origin(); ok {
		o.Status(code)
		return r
	}
	if r.sealed("status") {
		return r
	}
	r.status = code

	return r
}
