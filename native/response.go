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
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// Response adapts an http.ResponseWriter to [web.Response]. Headers and
// status are written on the first body write or terminating call.
type Response struct {
	*facade.Emitter
	*facade.Properties

	w      http.ResponseWriter
	lookup web.MIMELookup

	status        int
	statusMessage string
	charset       string
	sent          bool
	finished      bool
	locals        map[string]any

	app web.Application
	req web.Request
}

var _ web.Response = (*Response)(nil)

// NewResponse wraps w.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{
		Emitter:    facade.NewEmitter(nil),
		Properties: facade.NewProperties(nil),
		w:          w,
		lookup:     web.LookupMIME,
		status:     http.StatusOK,
		locals:     map[string]any{},
	}
}

// ResponseWriter returns the wrapped writer.
func (s *Response) ResponseWriter() http.ResponseWriter { return s.w }

func (s *Response) IsFake() bool { return false }

func (s *Response) App() web.Application { return s.app }
func (s *Response) Req() web.Request     { return s.req }

func (s *Response) SetRelations(app web.Application, req web.Request) {
	s.app, s.req = app, req
}

func (s *Response) Locals() map[string]any { return s.locals }
func (s *Response) HeadersSent() bool      { return s.sent }
func (s *Response) StatusCode() int        { return s.status }
func (s *Response) StatusMessage() string  { return s.statusMessage }
func (s *Response) Charset() string        { return s.charset }

func (s *Response) SetStatusMessage(msg string) web.Response {
	s.statusMessage = msg
	return s
}

func (s *Response) SetCharset(charset string) web.Response {
	s.charset = charset
	return s
}

func (s *Response) writeHead() {
	if s.sent {
		return
	}
	s.sent = true
	s.w.WriteHeader(s.status)
}

// finish writes body and emits finish. Later terminating calls are ignored.
func (s *Response) finish(body []byte) {
	if s.finished {
		return
	}
	if body != nil && s.w.Header().Get("Content-Length") == "" {
		s.w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	}
	s.writeHead()
	if len(body) > 0 && !s.isHead() {
		if _, err := s.w.Write(body); err != nil {
			s.Emit(web.EventError, err)
		}
	}
	s.finished = true
	s.Emit(web.EventFinish)
}

func (s *Response) isHead() bool {
	return !facade.IsNil(s.req) && s.req.Method() == http.MethodHead
}

func (s *Response) defaultType(t string) {
	if s.w.Header().Get("Content-Type") == "" {
		s.w.Header().Set("Content-Type", t)
	}
}

// Send writes body. Strings default to text/html, byte slices to
// application/octet-stream and anything else is encoded as JSON.
func (s *Response) Send(body any) web.Response {
	switch b := body.(type) {
	case nil:
		s.finish(nil)
	case string:
		s.defaultType("text/html; charset=utf-8")
		s.finish([]byte(b))
	case []byte:
		s.defaultType("application/octet-stream")
		s.finish(b)
	default:
		return s.JSON(body)
	}

	return s
}

func (s *Response) JSON(body any) web.Response {
	data, err := json.Marshal(body)
	if err != nil {
		writeProblem(s, http.StatusInternalServerError, err)
		return s
	}
	s.defaultType("application/json; charset=utf-8")
	s.finish(data)

	return s
}

// JSONP wraps the JSON body in the callback named by the "callback" query
// parameter. Without one it behaves like JSON.
func (s *Response) JSONP(body any) web.Response {
	callback := ""
	if !facade.IsNil(s.req) {
		callback = s.req.Query().Get(s.callbackName())
	}
	if callback == "" {
		return s.JSON(body)
	}

	data, err := json.Marshal(body)
	if err != nil {
		writeProblem(s, http.StatusInternalServerError, err)
		return s
	}
	s.w.Header().Set("X-Content-Type-Options", "nosniff")
	s.defaultType("text/javascript; charset=utf-8")
	s.finish([]byte("/**/ typeof " + callback + " === 'function' && " + callback + "(" + string(data) + ");"))

	return s
}

func (s *Response) callbackName() string {
	if app, ok := s.app.(*App); ok {
		if name := app.settingString(settingJSONPCallback); name != "" {
			return name
		}
	}

	return "callback"
}

func (s *Response) YAML(body any) web.Response {
	data, err := yaml.Marshal(body)
	if err != nil {
		writeProblem(s, http.StatusInternalServerError, err)
		return s
	}
	s.defaultType("application/x-yaml")
	s.finish(data)

	return s
}

func (s *Response) SendStatus(code int) web.Response {
	s.status = code
	s.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	text := http.StatusText(code)
	if text == "" {
		text = strconv.Itoa(code)
	}
	s.finish([]byte(text))

	return s
}

func (s *Response) End() web.Response {
	s.finish(nil)
	return s
}

func (s *Response) Status(code int) web.Response {
	s.status = code
	return s
}

func (s *Response) Set(field string, values ...string) web.Response {
	if len(values) == 0 {
		s.w.Header().Del(field)
		return s
	}
	s.w.Header()[http.CanonicalHeaderKey(field)] = slices.Clone(values)

	return s
}

func (s *Response) SetFields(fields map[string]string) web.Response {
	for k, v := range fields {
		s.w.Header().Set(k, v)
	}

	return s
}

func (s *Response) Header(field string, values ...string) web.Response {
	return s.Set(field, values...)
}

func (s *Response) Append(field string, values ...string) web.Response {
	for _, v := range values {
		s.w.Header().Add(field, v)
	}

	return s
}

func (s *Response) SetHeader(name string, values ...string) web.Response {
	return s.Set(name, values...)
}

func (s *Response) AppendHeader(name string, values ...string) web.Response {
	return s.Append(name, values...)
}

// SetHeaders replaces every header with h.
func (s *Response) SetHeaders(h http.Header) web.Response {
	header := s.w.Header()
	clear(header)
	for k, v := range h {
		header[http.CanonicalHeaderKey(k)] = slices.Clone(v)
	}

	return s
}

func (s *Response) RemoveHeader(name string) { s.w.Header().Del(name) }

func (s *Response) Get(field string) string {
	return strings.Join(s.w.Header().Values(field), ", ")
}

func (s *Response) GetHeader(name string) []string {
	return slices.Clone(s.w.Header().Values(name))
}

func (s *Response) GetHeaderNames() []string {
	return slices.Sorted(maps.Keys(s.w.Header()))
}

func (s *Response) GetHeaders() http.Header { return s.w.Header().Clone() }

func (s *Response) HasHeader(name string) bool {
	return len(s.w.Header().Values(name)) > 0
}

func (s *Response) Cookie(name, value string, opts *web.CookieOptions) web.Response {
	http.SetCookie(s.w, opts.HTTPCookie(name, value))
	return s
}

func (s *Response) CookieMap(values map[string]string, opts *web.CookieOptions) web.Response {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		s.Cookie(name, values[name], opts)
	}

	return s
}

func (s *Response) ClearCookie(name string, opts *web.CookieOptions) web.Response {
	c := opts.HTTPCookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(s.w, c)

	return s
}

func (s *Response) Type(t string) web.Response {
	s.w.Header().Set("Content-Type", web.ResolveType(t, s.lookup))
	return s
}

func (s *Response) ContentType(t string) web.Response { return s.Type(t) }

func (s *Response) Vary(field string) web.Response {
	s.w.Header().Set("Vary", web.AppendVary(s.w.Header().Get("Vary"), field))
	return s
}

func (s *Response) Links(links map[string]string) web.Response {
	for _, rel := range slices.Sorted(maps.Keys(links)) {
		s.w.Header().Add("Link", "<"+links[rel]+`>; rel="`+rel+`"`)
	}

	return s
}

func (s *Response) Attachment(filename string) web.Response {
	s.w.Header().Set("Content-Disposition", web.ContentDisposition(filename))
	return s
}
