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
	"html"
	"maps"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// ErrNoRenderer indicates that Render was called on a response without an
// [App] to render with.
var ErrNoRenderer = errors.New("native: no application to render with")

// Download sends the file at path as an attachment named filename, or the
// base name of path when filename is empty.
func (s *Response) Download(path, filename string, fn func(error)) {
	if filename == "" {
		filename = filepath.Base(path)
	}
	s.Attachment(filename)
	s.SendFile(path, fn)
}

// SendFile serves the file at path with http.ServeContent, so Range and
// conditional requests are honored.
func (s *Response) SendFile(path string, fn func(error)) {
	err := s.sendFile(path)
	if fn != nil {
		fn(err)
		return
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		writeProblem(s, status, err)
	}
}

func (s *Response) sendFile(path string) error {
	if s.finished {
		return nil
	}
	f, err := os.Open(path) //nolint:gosec // path is chosen by the handler
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("native: %s is a directory", path)
	}

	r := s.httpRequest()
	s.sent = true
	http.ServeContent(s.w, r, info.Name(), info.ModTime(), f)
	s.finished = true
	s.Emit(web.EventFinish)

	return nil
}

func (s *Response) httpRequest() *http.Request {
	if q, ok := s.req.(*Request); ok {
		return q.r
	}
	r, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)

	return r
}

// Format runs the handler registered for the best type in the Accept
// header. A "default" entry runs when nothing matches; otherwise the
// response is 406 Not Acceptable.
func (s *Response) Format(handlers map[string]func()) web.Response {
	offers := make([]string, 0, len(handlers))
	for _, k := range slices.Sorted(maps.Keys(handlers)) {
		if k != "default" {
			offers = append(offers, k)
		}
	}

	accept := ""
	if !facade.IsNil(s.req) {
		accept = s.req.Header("Accept")
	}
	s.Vary("Accept")
	if best := negotiateType(accept, offers); best != "" {
		s.defaultType(normalizeMediaType(best))
		handlers[best]()
		return s
	}
	if fn, ok := handlers["default"]; ok {
		fn()
		return s
	}
	writeProblem(s, http.StatusNotAcceptable, errors.New("no acceptable representation"))

	return s
}

// Location sets the Location header. "back" resolves to the Referer, or "/".
func (s *Response) Location(url string) web.Response {
	if url == "back" {
		url = "/"
		if !facade.IsNil(s.req) {
			if ref := s.req.Header("Referer"); ref != "" {
				url = ref
			}
		}
	}
	s.w.Header().Set("Location", url)

	return s
}

// Redirect sends a redirect to url. A zero status means 302 Found.
func (s *Response) Redirect(status int, url string) {
	if status == 0 {
		status = http.StatusFound
	}
	s.Location(url)
	target := s.w.Header().Get("Location")
	s.status = status

	if negotiateType(s.acceptHeader(), []string{"html", "text"}) == "html" {
		s.w.Header().Set("Content-Type", "text/html; charset=utf-8")
		s.finish([]byte(`<p>` + http.StatusText(status) + `. Redirecting to <a href="` +
			html.EscapeString(target) + `">` + html.EscapeString(target) + `</a></p>`))
		return
	}
	s.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.finish([]byte(http.StatusText(status) + ". Redirecting to " + target))
}

func (s *Response) acceptHeader() string {
	if facade.IsNil(s.req) {
		return ""
	}

	return s.req.Header("Accept")
}

// Render renders view with the application engines. Response locals are
// merged under locals. Without fn the output is sent as HTML.
func (s *Response) Render(view string, locals map[string]any, fn web.RenderCallback) {
	merged := maps.Clone(s.locals)
	maps.Copy(merged, locals)

	if fn == nil {
		fn = func(out string, err error) {
			if err != nil {
				writeProblem(s, http.StatusInternalServerError, err)
				return
			}
			s.defaultType("text/html; charset=utf-8")
			s.finish([]byte(out))
		}
	}
	if facade.IsNil(s.app) {
		fn("", ErrNoRenderer)
		return
	}
	s.app.Render(view, merged, fn)
}

// Write writes the status line on first use, then p.
func (s *Response) Write(p []byte) (int, error) {
	s.writeHead()
	return s.w.Write(p)
}

func (s *Response) Writev(chunks [][]byte) (int, error) {
	total := 0
	for _, c := range chunks {
		n, err := s.Write(c)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Cork is a no-op; writes are buffered by net/http.
func (s *Response) Cork() {}

// Uncork flushes buffered output.
func (s *Response) Uncork() { s.flush() }

func (s *Response) flush() {
	_ = http.NewResponseController(s.w).Flush()
}

// Destroy marks the response finished without writing anything further.
func (s *Response) Destroy(err error) web.Response {
	if s.finished {
		return s
	}
	s.finished = true
	if err != nil {
		s.Emit(web.EventError, err)
	}
	s.Emit(web.EventClose)

	return s
}

// SetTimeout runs fn after d unless the response finished first.
func (s *Response) SetTimeout(d time.Duration, fn func()) web.Response {
	if fn == nil {
		return s
	}
	t := time.AfterFunc(d, fn)
	s.Once(web.EventFinish, func(...any) { t.Stop() })

	return s
}

// AddTrailers declares h as trailers. They are sent after the body.
func (s *Response) AddTrailers(h http.Header) {
	for k, v := range h {
		for _, value := range v {
			s.w.Header().Add(http.TrailerPrefix+k, value)
		}
	}
}

// Socket returns nil: net/http only exposes the connection by hijacking it.
func (s *Response) Socket() net.Conn { return nil }

func (s *Response) WriteHead(code int, msg string, h http.Header) web.Response {
	s.status = code
	s.statusMessage = msg
	for k, v := range h {
		s.w.Header()[http.CanonicalHeaderKey(k)] = slices.Clone(v)
	}
	s.writeHead()

	return s
}

func (s *Response) WriteContinue()   { s.informational(http.StatusContinue) }
func (s *Response) WriteProcessing() { s.informational(http.StatusProcessing) }

func (s *Response) WriteEarlyHints(h http.Header, fn func()) {
	for k, v := range h {
		s.w.Header()[http.CanonicalHeaderKey(k)] = slices.Clone(v)
	}
	s.informational(http.StatusEarlyHints)
	if fn != nil {
		fn()
	}
}

func (s *Response) informational(code int) {
	if s.sent {
		return
	}
	s.w.WriteHeader(code)
}

// FlushHeaders writes the status line and headers immediately.
func (s *Response) FlushHeaders() {
	s.writeHead()
	s.flush()
}

func (s *Response) SetDefaultEncoding(string) web.Response { return s }
