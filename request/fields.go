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
	"net/http"
	"net/url"
	"strings"

	"rivaas.dev/httpmock/web"
)

// Method returns the request method.
func (r *Request) Method() string {
	if o, ok := r.Origin(); ok {
		return o.Method()
	}

	return r.method
}

// SetMethod replaces the request method.
func (r *Request) SetMethod(method string) {
	if o, ok := r.Origin(); ok {
		o.SetMethod(method)
		return
	}
	r.Touch()
	r.method = method
}

// URL returns the request URL as received, path and query included.
func (r *Request) URL() string {
	if o, ok := r.Origin(); ok {
		return o.URL()
	}

	return r.url
}

// SetURL replaces the URL. Path and query follow; the original URL does not.
func (r *Request) SetURL(rawURL string) {
	if o, ok := r.Origin(); ok {
		o.SetURL(rawURL)
		return
	}
	r.Touch()
	r.setURL(rawURL)
}

// OriginalURL returns the URL as first received.
func (r *Request) OriginalURL() string {
	if o, ok := r.Origin(); ok {
		return o.OriginalURL()
	}

	return r.originalURL
}

// BaseURL returns the mount path of the router that matched.
func (r *Request) BaseURL() string {
	if o, ok := r.Origin(); ok {
		return o.BaseURL()
	}

	return r.baseURL
}

// Path returns the path part of the URL.
func (r *Request) Path() string {
	if o, ok := r.Origin(); ok {
		return o.Path()
	}

	return r.path
}

// Protocol returns "http" or "https".
func (r *Request) Protocol() string {
	if o, ok := r.Origin(); ok {
		return o.Protocol()
	}

	return r.protocol
}

// Secure reports whether the request came over TLS.
func (r *Request) Secure() bool {
	if o, ok := r.Origin(); ok {
		return o.Secure()
	}

	return r.secure
}

// IP returns the remote address.
func (r *Request) IP() string {
	if o, ok := r.Origin(); ok {
		return o.IP()
	}

	return r.ip
}

// IPs returns the forwarded addresses, client first.
func (r *Request) IPs() []string {
	if o, ok := r.Origin(); ok {
		return o.IPs()
	}

	return r.ips
}

// Host returns the host with its port.
func (r *Request) Host() string {
	if o, ok := r.Origin(); ok {
		return o.Host()
	}

	return r.host
}

// Hostname returns the host without its port.
func (r *Request) Hostname() string {
	if o, ok := r.Origin(); ok {
		return o.Hostname()
	}

	return r.hostname
}

// Subdomains returns the subdomains of the hostname, nearest first.
func (r *Request) Subdomains() []string {
	if o, ok := r.Origin(); ok {
		return o.Subdomains()
	}

	return r.subdomains
}

// Fresh reports whether a cached response is still valid.
func (r *Request) Fresh() bool {
	if o, ok := r.Origin(); ok {
		return o.Fresh()
	}

	return r.fresh
}

// Stale is the inverse of Fresh.
func (r *Request) Stale() bool {
	if o, ok := r.Origin(); ok {
		return o.Stale()
	}

	return r.stale
}

// XHR reports whether the request was sent by XMLHttpRequest.
func (r *Request) XHR() bool {
	if o, ok := r.Origin(); ok {
		return o.XHR()
	}

	return r.xhr
}

// HTTPVersion returns the protocol version, as in "1.1".
func (r *Request) HTTPVersion() string {
	if o, ok := r.Origin(); ok {
		return o.HTTPVersion()
	}

	return r.httpVersion
}

// Body returns the parsed request body.
func (r *Request) Body() any {
	if o, ok := r.Origin(); ok {
		return o.Body()
	}

	return r.body
}

// SetBody replaces the decoded body.
func (r *Request) SetBody(body any) {
	if o, ok := r.Origin(); ok {
		o.SetBody(body)
		return
	}
	r.Touch()
	r.body = body
}

// Headers returns the header map. Synthetic requests return their own map,
// so writes to it are visible to later reads.
func (r *Request) Headers() http.Header {
	if o, ok := r.Origin(); ok {
		return o.Headers()
	}
	if r.headers == nil {
		r.headers = http.Header{}
	}

	return r.headers
}

// SetHeaders replaces the headers.
func (r *Request) SetHeaders(h http.Header) {
	if o, ok := r.Origin(); ok {
		o.SetHeaders(h)
		return
	}
	r.Touch()
	r.headers = h
}

// Header returns the first value of the named header. Referer and Referrer
// are interchangeable.
func (r *Request) Header(name string) string {
	if o, ok := r.Origin(); ok {
		return o.Header(name)
	}

	switch strings.ToLower(name) {
	case "referer", "referrer":
		if v := r.headers.Get("Referer"); v != "" {
			return v
		}

		return r.headers.Get("Referrer")
	default:
		return r.headers.Get(name)
	}
}

// Get is an alias of [Request.Header].
func (r *Request) Get(name string) string { return r.Header(name) }

// Cookies returns the request cookies by name.
func (r *Request) Cookies() map[string]string {
	if o, ok := r.Origin(); ok {
		return o.Cookies()
	}

	return r.cookies
}

// SetCookies replaces the cookies.
func (r *Request) SetCookies(cookies map[string]string) {
	if o, ok := r.Origin(); ok {
		o.SetCookies(cookies)
		return
	}
	r.Touch()
	r.cookies = cookies
}

// SignedCookies returns the verified signed cookies by name.
func (r *Request) SignedCookies() map[string]string {
	if o, ok := r.Origin(); ok {
		return o.SignedCookies()
	}

	return r.signedCookies
}

// SetSignedCookies replaces the signed cookies.
func (r *Request) SetSignedCookies(cookies map[string]string) {
	if o, ok := r.Origin(); ok {
		o.SetSignedCookies(cookies)
		return
	}
	r.Touch()
	r.signedCookies = cookies
}

// Params returns the route parameters.
func (r *Request) Params() map[string]string {
	if o, ok := r.Origin(); ok {
		return o.Params()
	}

	return r.params
}

// SetParams replaces the route parameters.
func (r *Request) SetParams(params map[string]string) {
	if o, ok := r.Origin(); ok {
		o.SetParams(params)
		return
	}
	r.Touch()
	r.params = params
}

// Param returns the route parameter name, or def when it is absent.
func (r *Request) Param(name, def string) string {
	if o, ok := r.Origin(); ok {
		return o.Param(name, def)
	}
	if v, ok := r.params[name]; ok {
		return v
	}

	return def
}

// Query returns the parsed query string.
func (r *Request) Query() url.Values {
	if o, ok := r.Origin(); ok {
		return o.Query()
	}

	return r.query
}

// SetQuery replaces the query values.
func (r *Request) SetQuery(q url.Values) {
	if o, ok := r.Origin(); ok {
		o.SetQuery(q)
		return
	}
	r.Touch()
	r.query = q
}

// Route returns the matched route metadata.
func (r *Request) Route() *web.Route {
	if o, ok := r.Origin(); ok {
		return o.Route()
	}

	return r.route
}

// SetRoute replaces the matched route.
func (r *Request) SetRoute(route *web.Route) {
	if o, ok := r.Origin(); ok {
		o.SetRoute(route)
		return
	}
	r.Touch()
	r.route = route
}

// Locals returns the per-request scratch space. It is created on first use
// and the same value is returned afterwards.
func (r *Request) Locals() *web.Locals {
	if o, ok := r.Origin(); ok {
		return o.Locals()
	}
	if r.locals == nil {
		r.Touch()
		r.locals = &web.Locals{}
	}

	return r.locals.Ensure()
}
