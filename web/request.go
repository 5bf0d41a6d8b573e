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
	"io"
	"iter"
	"net/http"
	"net/url"
	"time"
)

// Request is the incoming request as seen by handler code.
type Request interface {
	Carrier
	io.Reader

	// IsFake reports whether the request was synthesized rather than received.
	IsFake() bool

	// App returns the owning application.
	App() Application

	// Res returns the response paired with this request.
	Res() Response

	// Next returns the continuation of the middleware call, nil outside middleware.
	Next() Next

	// SetRelations wires the application, response and continuation.
	SetRelations(app Application, res Response, next Next)

	Method() string
	SetMethod(method string)
	URL() string
	SetURL(rawURL string)
	OriginalURL() string
	BaseURL() string
	Path() string
	Protocol() string
	Secure() bool
	IP() string
	IPs() []string
	Host() string
	Hostname() string
	Subdomains() []string
	Fresh() bool
	Stale() bool
	XHR() bool
	HTTPVersion() string

	Body() any
	SetBody(body any)

	// Headers returns the request header map.
	Headers() http.Header
	SetHeaders(h http.Header)

	// Header returns the first value of the named header.
	Header(name string) string

	// Get is an alias of Header.
	Get(name string) string

	Cookies() map[string]string
	SetCookies(cookies map[string]string)
	SignedCookies() map[string]string
	SetSignedCookies(cookies map[string]string)

	Params() map[string]string
	SetParams(params map[string]string)

	// Param returns the route parameter name, or def when absent.
	Param(name, def string) string

	Query() url.Values
	SetQuery(q url.Values)

	Route() *Route
	SetRoute(r *Route)

	// Locals returns the per-request local values, creating them on first use.
	Locals() *Locals

	// Accepts returns the best offer for the Accept header, or "" when none fits.
	Accepts(offers ...string) string
	AcceptsCharsets(offers ...string) string
	AcceptsEncodings(offers ...string) string
	AcceptsLanguages(offers ...string) string

	// Is returns the first type matching the Content-Type header, or "".
	Is(types ...string) string

	// Range parses the Range header against a resource of size bytes.
	// It returns nil, nil when the header is absent.
	Range(size int64, combine bool) (*Ranges, error)

	Pipe(w io.Writer) (int64, error)
	Push(chunk []byte) bool
	Unshift(chunk []byte)
	Pause() Request
	Resume() Request
	IsPaused() bool
	SetEncoding(encoding string) Request
	SetTimeout(d time.Duration, fn func()) Request
	Destroy(err error) Request
	Destroyed() bool

	// Chunks iterates over the body in chunks.
	Chunks() iter.Seq[[]byte]
	Map(fn func([]byte) []byte) iter.Seq[[]byte]
	Filter(fn func([]byte) bool) iter.Seq[[]byte]
	Reduce(fn func(acc any, chunk []byte) any, initial any) any

	// Collect reads the remaining body chunks into one slice.
	Collect() [][]byte
}
