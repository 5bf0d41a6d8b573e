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
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"

	"rivaas.dev/httpmock/web"
)

// Set replaces the values of field. Without values the header is removed.
func (r *Response) Set(field string, values ...string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Set(field, values...)
		return r
	}
	if r.sealed("set") {
		return r
	}
	r.setHeader(field, values)

	return r
}

func (r *Response) setHeader(field string, values []string) {
	if len(values) == 0 {
		r.headers.Del(field)
		return
	}
	r.headers[http.CanonicalHeaderKey(field)] = slices.Clone(values)
}

// SetFields sets several headers at once.
func (r *Response) SetFields(fields map[string]string) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetFields(fields)
		return r
	}
	if r.sealed("setFields") {
		return r
	}
	for k, v := range fields {
		r.headers.Set(k, v)
	}

	return r
}

// Header is an alias of [Response.Set].
func (r *Response) Header(field string, values ...string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Header(field, values...)
		return r
	}
	if r.sealed("header") {
		return r
	}
	r.setHeader(field, values)

	return r
}

// Append adds values after the existing values of field.
func (r *Response) Append(field string, values ...string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Append(field, values...)
		return r
	}
	if r.sealed("append") {
		return r
	}
	for _, v := range values {
		r.headers.Add(field, v)
	}

	return r
}

// SetHeader replaces the values of name.
func (r *Response) SetHeader(name string, values ...string) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetHeader(name, values...)
		return r
	}
	if r.sealed("setHeader") {
		return r
	}
	r.setHeader(name, values)

	return r
}

// AppendHeader adds values to name.
func (r *Response) AppendHeader(name string, values ...string) web.Response {
	if o, ok := r.Origin(); ok {
		o.AppendHeader(name, values...)
		return r
	}

	return r.Append(name, values...)
}

// SetHeaders replaces every staged header with h.
func (r *Response) SetHeaders(h http.Header) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetHeaders(h)
		return r
	}
	if r.sealed("setHeaders") {
		return r
	}
	r.headers = http.Header{}
	for k, v := range h {
		r.setHeader(k, v)
	}

	return r
}

// RemoveHeader deletes name.
func (r *Response) RemoveHeader(name string) {
	if o, ok := r.Origin(); ok {
		o.RemoveHeader(name)
		return
	}
	if r.sealed("removeHeader") {
		return
	}
	r.headers.Del(name)
}

// Get returns the values of field joined with ", ".
func (r *Response) Get(field string) string {
	if o, ok := r.Origin(); ok {
		return o.Get(field)
	}

	return strings.Join(r.headers.Values(field), ", ")
}

// GetHeader returns every value of name.
func (r *Response) GetHeader(name string) []string {
	if o, ok := r.Origin(); ok {
		return o.GetHeader(name)
	}

	return slices.Clone(r.headers.Values(name))
}

// GetHeaderNames returns the staged header names, sorted.
func (r *Response) GetHeaderNames() []string {
	if o, ok := r.Origin(); ok {
		return o.GetHeaderNames()
	}

	names := make([]string, 0, len(r.headers))
	for k := range r.headers {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

// GetHeaders returns a copy of the staged headers.
func (r *Response) GetHeaders() http.Header {
	if o, ok := r.Origin(); ok {
		return o.GetHeaders()
	}

	return r.headers.Clone()
}

// HasHeader reports whether name is set.
func (r *Response) HasHeader(name string) bool {
	if o, ok := r.Origin(); ok {
		return o.HasHeader(name)
	}
	_, ok := r.headers[http.CanonicalHeaderKey(name)]

	return ok
}

// Cookie stages a cookie. A pending clear of the same name is cancelled.
func (r *Response) Cookie(name, value string, opts *web.CookieOptions) web.Response {
	if o, ok := r.Origin(); ok {
		o.Cookie(name, value, opts)
		return r
	}
	if r.sealed("cookie") {
		return r
	}
	delete(r.cleared, name)
	r.cookies[name] = web.Cookie{Value: value, Options: opts}

	return r
}

// CookieMap stages one cookie per entry of values, sharing opts.
func (r *Response) CookieMap(values map[string]string, opts *web.CookieOptions) web.Response {
	if o, ok := r.Origin(); ok {
		o.CookieMap(values, opts)
		return r
	}
	if r.sealed("cookieMap") {
		return r
	}
	for name, value := range values {
		r.Cookie(name, value, opts)
	}

	return r
}

// ClearCookie records that the client should drop name.
func (r *Response) ClearCookie(name string, opts *web.CookieOptions) web.Response {
	if o, ok := r.Origin(); ok {
		o.ClearCookie(name, opts)
		return r
	}
	if r.sealed("clearCookie") {
		return r
	}
	r.cleared[name] = opts

	return r
}

// Type sets Content-Type. A value containing "/" is used verbatim; any other
// value is resolved through the MIME lookup.
func (r *Response) Type(t string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Type(t)
		return r
	}
	if r.sealed("type") {
		return r
	}
	if ct := web.ResolveType(t, r.lookup); ct != "" {
		r.headers.Set("Content-Type", ct)
	}

	return r
}

// ContentType is an alias of [Response.Type].
func (r *Response) ContentType(t string) web.Response {
	if o, ok := r.Origin(); ok {
		o.ContentType(t)
		return r
	}

	return r.Type(t)
}

// Vary adds field to the Vary header unless it is already listed.
func (r *Response) Vary(field string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Vary(field)
		return r
	}
	if r.sealed("vary") {
		return r
	}
	r.headers.Set("Vary", web.AppendVary(r.headers.Get("Vary"), field))

	return r
}

// Links appends one Link value per relation, sorted by relation name.
func (r *Response) Links(links map[string]string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Links(links)
		return r
	}
	if r.sealed("links") {
		return r
	}
	rels := make([]string, 0, len(links))
	for rel := range links {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		r.headers.Add("Link", fmt.Sprintf("<%s>; rel=\"%s\"", links[rel], rel))
	}

	return r
}

// Attachment sets Content-Disposition to attachment, with filename when given.
func (r *Response) Attachment(filename string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Attachment(filename)
		return r
	}
	if r.sealed("attachment") {
		return r
	}
	r.headers.Set("Content-Disposition", web.ContentDisposition(filename))

	return r
}
