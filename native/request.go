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
	"bytes"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// Request adapts an *http.Request to [web.Request].
type Request struct {
	*facade.Emitter
	*facade.Properties

	r *http.Request

	originalURL string
	bodyRead    bool
	body        any

	signed map[string]string
	params map[string]string
	route  *web.Route
	locals *web.Locals

	paused    bool
	destroyed bool
	pending   [][]byte

	app  web.Application
	res  web.Response
	next web.Next
}

var _ web.Request = (*Request)(nil)

// NewRequest wraps r. The body is read on the first call to Body.
func NewRequest(r *http.Request) *Request {
	return &Request{
		Emitter:     facade.NewEmitter(nil),
		Properties:  facade.NewProperties(nil),
		r:           r,
		originalURL: r.URL.RequestURI(),
		signed:      map[string]string{},
		params:      map[string]string{},
	}
}

// HTTPRequest returns the wrapped request.
func (q *Request) HTTPRequest() *http.Request { return q.r }

func (q *Request) IsFake() bool { return false }

func (q *Request) App() web.Application { return q.app }
func (q *Request) Res() web.Response    { return q.res }
func (q *Request) Next() web.Next       { return q.next }

func (q *Request) SetRelations(app web.Application, res web.Response, next web.Next) {
	q.app, q.res, q.next = app, res, next
}

func (q *Request) Method() string          { return q.r.Method }
func (q *Request) SetMethod(method string) { q.r.Method = method }

func (q *Request) URL() string { return q.r.URL.RequestURI() }

// SetURL replaces the path and query. Unparsable values are ignored.
func (q *Request) SetURL(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	q.r.URL.Path = u.Path
	q.r.URL.RawPath = u.RawPath
	q.r.URL.RawQuery = u.RawQuery
}

func (q *Request) OriginalURL() string { return q.originalURL }

// BaseURL returns the mount prefix of the route that matched, "" at the root.
func (q *Request) BaseURL() string {
	v, _ := q.Value(baseURLKey)
	s, _ := v.(string)

	return s
}

func (q *Request) Path() string {
	if q.r.URL.Path == "" {
		return "/"
	}

	return q.r.URL.Path
}

func (q *Request) Protocol() string {
	if q.r.TLS != nil {
		return "https"
	}
	if proto := q.r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(proto)
	}
	if q.r.URL.Scheme != "" {
		return q.r.URL.Scheme
	}

	return "http"
}

func (q *Request) Secure() bool { return q.Protocol() == "https" }

func (q *Request) IP() string {
	if ips := q.IPs(); len(ips) > 0 {
		return ips[0]
	}

	host, _, err := net.SplitHostPort(q.r.RemoteAddr)
	if err != nil {
		return q.r.RemoteAddr
	}

	return host
}

// IPs returns the X-Forwarded-For chain, client first.
func (q *Request) IPs() []string {
	xff := q.r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return []string{}
	}

	ips := []string{}
	for part := range strings.SplitSeq(xff, ",") {
		if ip := strings.TrimSpace(part); ip != "" {
			ips = append(ips, ip)
		}
	}

	return ips
}

func (q *Request) Host() string {
	if q.r.Host != "" {
		return q.r.Host
	}

	return q.r.URL.Host
}

func (q *Request) Hostname() string {
	host := q.Host()
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return host
}

// Subdomains returns the labels left of the registrable domain, nearest first.
func (q *Request) Subdomains() []string {
	host := q.Hostname()
	if net.ParseIP(host) != nil {
		return []string{}
	}

	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return []string{}
	}
	subs := slices.Clone(parts[:len(parts)-2])
	slices.Reverse(subs)

	return subs
}

// Fresh reports whether the client cache matches the staged response
// validators (RFC 7232).
func (q *Request) Fresh() bool {
	if q.r.Method != http.MethodGet && q.r.Method != http.MethodHead {
		return false
	}
	if strings.Contains(q.r.Header.Get("Cache-Control"), "no-cache") {
		return false
	}
	if facade.IsNil(q.res) {
		return false
	}

	if match := q.r.Header.Get("If-None-Match"); match != "" {
		etag := q.res.Get("ETag")
		if match == "*" {
			return true
		}
		if etag == "" {
			return false
		}
		for candidate := range strings.SplitSeq(match, ",") {
			if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == strings.TrimPrefix(etag, "W/") {
				return true
			}
		}

		return false
	}

	since, err := http.ParseTime(q.r.Header.Get("If-Modified-Since"))
	if err != nil {
		return false
	}
	modified, err := http.ParseTime(q.res.Get("Last-Modified"))
	if err != nil {
		return false
	}

	return !modified.After(since)
}

func (q *Request) Stale() bool { return !q.Fresh() }

func (q *Request) XHR() bool {
	return strings.EqualFold(q.r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func (q *Request) HTTPVersion() string {
	return strings.TrimPrefix(q.r.Proto, "HTTP/")
}

// Body returns the decoded body. JSON and YAML payloads are unmarshaled,
// forms become url.Values and anything else is returned as a string.
// An empty body yields nil.
func (q *Request) Body() any {
	if q.bodyRead {
		return q.body
	}
	q.bodyRead = true

	if q.r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(q.r.Body)
	_ = q.r.Body.Close()
	q.r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return nil
	}

	q.body = decodeBody(q.r.Header.Get("Content-Type"), raw)

	return q.body
}

func decodeBody(contentType string, raw []byte) any {
	switch {
	case matchType(contentType, []string{"json", "*/*+json"}) != "":
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	case matchType(contentType, []string{"yaml", "application/yaml", "text/yaml"}) != "":
		var v any
		if err := yaml.Unmarshal(raw, &v); err == nil {
			return v
		}
	case matchType(contentType, []string{"form"}) != "":
		if v, err := url.ParseQuery(string(raw)); err == nil {
			return v
		}
	}

	return string(raw)
}

func (q *Request) SetBody(body any) {
	q.bodyRead = true
	q.body = body
}

func (q *Request) Headers() http.Header     { return q.r.Header }
func (q *Request) SetHeaders(h http.Header) { q.r.Header = h }

// Header returns the first value of name. Referer and Referrer are interchangeable.
func (q *Request) Header(name string) string {
	switch strings.ToLower(name) {
	case "referer", "referrer":
		if v := q.r.Header.Get("Referer"); v != "" {
			return v
		}

		return q.r.Header.Get("Referrer")
	}

	return q.r.Header.Get(name)
}

func (q *Request) Get(name string) string { return q.Header(name) }

// Cookies returns the request cookies parsed from the Cookie header.
func (q *Request) Cookies() map[string]string {
	out := map[string]string{}
	for _, c := range q.r.Cookies() {
		if _, ok := out[c.Name]; !ok {
			out[c.Name] = c.Value
		}
	}

	return out
}

// SetCookies replaces the Cookie header.
func (q *Request) SetCookies(cookies map[string]string) {
	q.r.Header.Del("Cookie")
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		q.r.AddCookie(&http.Cookie{Name: name, Value: cookies[name]})
	}
}

func (q *Request) SignedCookies() map[string]string           { return q.signed }
func (q *Request) SetSignedCookies(cookies map[string]string) { q.signed = cookies }
func (q *Request) Params() map[string]string                  { return q.params }
func (q *Request) SetParams(params map[string]string)         { q.params = params }
func (q *Request) Route() *web.Route                          { return q.route }
func (q *Request) SetRoute(r *web.Route)                      { q.route = r }

func (q *Request) Accepts(offers ...string) string {
	return negotiateType(q.r.Header.Get("Accept"), offers)
}

func (q *Request) AcceptsCharsets(offers ...string) string {
	return negotiate(q.r.Header.Get("Accept-Charset"), offers)
}

func (q *Request) AcceptsEncodings(offers ...string) string {
	return negotiate(q.r.Header.Get("Accept-Encoding"), offers)
}

func (q *Request) AcceptsLanguages(offers ...string) string {
	return negotiate(q.r.Header.Get("Accept-Language"), offers)
}

func (q *Request) Is(types ...string) string {
	return matchType(q.r.Header.Get("Content-Type"), types)
}

func (q *Request) Param(name, def string) string {
	if v, ok := q.params[name]; ok {
		return v
	}

	return def
}

func (q *Request) Query() url.Values { return q.r.URL.Query() }

func (q *Request) SetQuery(v url.Values) { q.r.URL.RawQuery = v.Encode() }

func (q *Request) Locals() *web.Locals {
	if q.locals == nil {
		q.locals = &web.Locals{}
	}

	return q.locals.Ensure()
}

func (q *Request) Range(size int64, combine bool) (*web.Ranges, error) {
	header := q.r.Header.Get("Range")
	if header == "" {
		return nil, nil
	}

	return parseRange(header, size, combine)
}
