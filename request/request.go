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

package request

import (
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"sort"

	"dario.cat/mergo"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/service"
	"rivaas.dev/httpmock/web"
)

const kind = "request"

// Option configures a request facade.
type Option func(*config)

type config struct {
	logger *slog.Logger
	custom map[string]any
}

// WithLogger sets the logger receiving facade warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCustom adds extra properties after every other field is initialized.
// A property is applied only when its name is free; collisions are logged
// and skipped.
func WithCustom(custom map[string]any) Option {
	return func(c *config) { c.custom = custom }
}

// Request is the request facade. Use [Fake] or [Clone] to create one.
type Request struct {
	*facade.Base[web.Request]

	fake bool

	method      string
	url         string
	originalURL string
	baseURL     string
	path        string
	query       url.Values
	body        any

	headers       http.Header
	cookies       map[string]string
	signedCookies map[string]string
	params        map[string]string
	route         *web.Route
	locals        *web.Locals

	protocol    string
	secure      bool
	ip          string
	ips         []string
	host        string
	hostname    string
	subdomains  []string
	fresh       bool
	stale       bool
	xhr         bool
	httpVersion string

	destroyed bool

	related bool
	app     web.Application
	res     web.Response
	next    web.Next
}

var _ web.Request = (*Request)(nil)

func newRequest(opts []Option) (*Request, *config) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Request{Base: facade.NewBase[web.Request](kind, cfg.logger)}, cfg
}

// Fake builds a synthetic request from svc. An absent or malformed descriptor
// is replaced with [service.Default]. origin, when not nil, seeds the ambient
// fields; it is read once and never written.
func Fake(svc *service.Descriptor, origin web.Request, opts ...Option) *Request {
	d := service.Normalize(svc)
	r, cfg := newRequest(opts)
	r.fake = true
	r.protocol = "http"
	r.httpVersion = "1.1"
	r.params = map[string]string{}

	headers := http.Header{}
	cookies := map[string]string{}
	signed := map[string]string{}

	if !facade.IsNil(origin) {
		r.copyAmbient(origin)
		maps.Copy(headers, origin.Headers().Clone())
		maps.Copy(cookies, origin.Cookies())
		maps.Copy(signed, origin.SignedCookies())
	}

	r.method = string(d.Method)
	r.body = d.Body
	r.setURL(d.URL)
	r.originalURL = d.URL

	// Keys the origin already defines win, even with an empty value; the
	// descriptor fills the gaps.
	if err := mergo.Merge(&headers, d.HTTPHeader(), gapFill); err != nil {
		r.Logger().Warn("header merge failed", "kind", kind, "error", err)
	}
	if err := mergo.Merge(&cookies, d.Cookies, gapFill); err != nil {
		r.Logger().Warn("cookie merge failed", "kind", kind, "error", err)
	}
	if err := mergo.Merge(&signed, d.SignedCookies, gapFill); err != nil {
		r.Logger().Warn("signed cookie merge failed", "kind", kind, "error", err)
	}
	r.headers = headers
	r.cookies = cookies
	r.signedCookies = signed

	if r.route == nil {
		r.route = &web.Route{
			Path:    r.path,
			Stack:   []web.Layer{},
			Methods: map[string]bool{r.method: true},
		}
	}

	r.applyCustom(cfg.custom)
	r.Touch()

	return r
}

var gapFill = mergo.WithTransformers(presentKeys{})

// presentKeys merges maps key by key. A key present in the destination is
// kept whatever its value.
type presentKeys struct{}

func (presentKeys) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t.Kind() != reflect.Map {
		return nil
	}

	return func(dst, src reflect.Value) error {
		if src.IsNil() {
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(t))
		}
		for it := src.MapRange(); it.Next(); {
			if dst.MapIndex(it.Key()).IsValid() {
				continue
			}
			dst.SetMapIndex(it.Key(), it.Value())
		}

		return nil
	}
}

func (r *Request) copyAmbient(origin web.Request) {
	for k, v := range origin.Values() {
		r.SetValue(k, v)
	}

	r.baseURL = origin.BaseURL()
	r.protocol = origin.Protocol()
	r.secure = origin.Secure()
	r.ip = origin.IP()
	r.ips = slices.Clone(origin.IPs())
	r.host = origin.Host()
	r.hostname = origin.Hostname()
	r.subdomains = slices.Clone(origin.Subdomains())
	r.fresh = origin.Fresh()
	r.stale = origin.Stale()
	r.xhr = origin.XHR()
	r.httpVersion = origin.HTTPVersion()
	r.route = origin.Route().Clone()
	r.app = origin.App()
	r.next = origin.Next()

	if l := origin.Locals(); l != nil {
		r.locals = (&web.Locals{Values: maps.Clone(l.Values)}).Ensure()
	}
}

// reserved names the typed fields of a request. They are always set after
// construction, so custom properties can never claim them.
var reserved = map[string]struct{}{
	"app": {}, "baseUrl": {}, "body": {}, "cookies": {}, "fresh": {},
	"headers": {}, "host": {}, "hostname": {}, "httpVersion": {}, "ip": {},
	"ips": {}, "isFake": {}, "locals": {}, "method": {}, "next": {},
	"originalUrl": {}, "params": {}, "path": {}, "protocol": {}, "query": {},
	"res": {}, "route": {}, "secure": {}, "signedCookies": {}, "stale": {},
	"subdomains": {}, "url": {}, "xhr": {},
}

func (r *Request) applyCustom(custom map[string]any) {
	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		_, taken := reserved[key]
		if !taken {
			_, taken = r.Value(key)
		}
		if taken {
			r.Logger().Warn("request.forbidden.custom", "kind", kind, "key", key)
			continue
		}
		r.SetValue(key, custom[key])
	}
}

// Clone wraps req in an origin-backed facade. A facade is returned unchanged;
// nil yields a default synthetic request.
func Clone(req web.Request, opts ...Option) web.Request {
	if f, ok := req.(*Request); ok && f != nil {
		return f
	}
	if facade.IsNil(req) {
		return Fake(nil, nil, opts...)
	}

	r, _ := newRequest(opts)
	if err := r.SetOrigin(req); err != nil {
		r.Logger().Warn("bind failed", "kind", kind, "error", err)
	}

	return r
}

// IsFake reports whether the request was synthesized.
func (r *Request) IsFake() bool {
	if o, ok := r.Origin(); ok {
		return o.IsFake()
	}

	return r.fake
}

// SetRelations wires the application, response and continuation. Only the
// first call has an effect.
func (r *Request) SetRelations(app web.Application, res web.Response, next web.Next) {
	if r.related {
		return
	}
	r.related = true
	if !facade.IsNil(app) {
		r.app = app
	}
	r.res = res
	if next != nil {
		r.next = next
	}
}

// App returns the owning application.
func (r *Request) App() web.Application {
	if o, ok := r.Origin(); ok && !r.related {
		return o.App()
	}

	return r.app
}

// Res returns the paired response.
func (r *Request) Res() web.Response {
	if o, ok := r.Origin(); ok && !r.related {
		return o.Res()
	}

	return r.res
}

// Next returns the middleware continuation, nil outside middleware.
func (r *Request) Next() web.Next {
	if o, ok := r.Origin(); ok && !r.related {
		return o.Next()
	}

	return r.next
}

func (r *Request) setURL(raw string) {
	r.url = raw
	r.path = raw
	r.query = url.Values{}

	u, err := url.Parse(raw)
	if err != nil {
		return
	}
	r.path = u.Path
	if r.path == "" {
		r.path = "/"
	}
	r.query = u.Query()
}
