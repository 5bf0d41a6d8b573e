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
	"net"
	"net/http"
	"time"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// Download sends the file at path as an attachment. Synthetic responses log and skip it.
func (r *Response) Download(path, filename string, fn func(error)) {
	if o, ok := r.Origin(); ok {
		o.Download(path, filename, fn)
		return
	}
	r.Unsupported("download", "path", path)
}

// SendFile sends the file at path. Synthetic responses log and skip it.
func (r *Response) SendFile(path string, fn func(error)) {
	if o, ok := r.Origin(); ok {
		o.SendFile(path, fn)
		return
	}
	r.Unsupported("sendFile", "path", path)
}

// Format runs the handler matching the Accept header.
func (r *Response) Format(handlers map[string]func()) web.Response {
	if o, ok := r.Origin(); ok {
		o.Format(handlers)
		return r
	}
	r.Unsupported("format", "offers", len(handlers))

	return r
}

// Location sets the Location header.
func (r *Response) Location(url string) web.Response {
	if o, ok := r.Origin(); ok {
		o.Location(url)
		return r
	}
	r.Unsupported("location", "url", url)

	return r
}

// Redirect redirects to url with status.
func (r *Response) Redirect(status int, url string) {
	if o, ok := r.Origin(); ok {
		o.Redirect(status, url)
		return
	}
	r.Unsupported("redirect", "url", url, "status", status)
}

// Render renders view with locals.
func (r *Response) Render(view string, locals map[string]any, fn web.RenderCallback) {
	if o, ok := r.Origin(); ok {
		o.Render(view, locals, fn)
		return
	}
	r.Unsupported("render", "view", view)
}

// Write implements [io.Writer]. Synthetic responses have no body stream.
func (r *Response) Write(p []byte) (int, error) {
	if o, ok := r.Origin(); ok {
		return o.Write(p)
	}
	r.ShouldNotCall("write")

	return 0, facade.ErrSynthetic
}

// Writev writes chunks in order.
func (r *Response) Writev(chunks [][]byte) (int, error) {
	if o, ok := r.Origin(); ok {
		return o.Writev(chunks)
	}
	r.ShouldNotCall("writev")

	return 0, facade.ErrSynthetic
}

// Cork buffers writes until Uncork.
func (r *Response) Cork() {
	if o, ok := r.Origin(); ok {
		o.Cork()
		return
	}
	r.ShouldNotCall("cork")
}

// Uncork flushes the writes buffered since Cork.
func (r *Response) Uncork() {
	if o, ok := r.Origin(); ok {
		o.Uncork()
		return
	}
	r.ShouldNotCall("uncork")
}

// Destroy aborts the response.
func (r *Response) Destroy(err error) web.Response {
	if o, ok := r.Origin(); ok {
		o.Destroy(err)
		return r
	}
	r.ShouldNotCall("destroy")

	return r
}

// SetTimeout calls fn when the response idles for d.
func (r *Response) SetTimeout(d time.Duration, fn func()) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetTimeout(d, fn)
		return r
	}
	r.ShouldNotCall("setTimeout")

	return r
}

// AddTrailers sets the trailers sent after the body.
func (r *Response) AddTrailers(h http.Header) {
	if o, ok := r.Origin(); ok {
		o.AddTrailers(h)
		return
	}
	r.ShouldNotCall("addTrailers")
}

// Socket returns the underlying connection, nil for synthetic responses.
func (r *Response) Socket() net.Conn {
	if o, ok := r.Origin(); ok {
		return o.Socket()
	}

	return nil
}

// WriteHead writes the status line and h.
func (r *Response) WriteHead(code int, msg string, h http.Header) web.Response {
	if o, ok := r.Origin(); ok {
		o.WriteHead(code, msg, h)
		return r
	}
	r.ShouldNotCall("writeHead")

	return r
}

// WriteContinue sends a 100 Continue.
func (r *Response) WriteContinue() {
	if o, ok := r.Origin(); ok {
		o.WriteContinue()
		return
	}
	r.ShouldNotCall("writeContinue")
}

// WriteProcessing sends a 102 Processing.
func (r *Response) WriteProcessing() {
	if o, ok := r.Origin(); ok {
		o.WriteProcessing()
		return
	}
	r.ShouldNotCall("writeProcessing")
}

// WriteEarlyHints sends a 103 Early Hints with h.
func (r *Response) WriteEarlyHints(h http.Header, fn func()) {
	if o, ok := r.Origin(); ok {
		o.WriteEarlyHints(h, fn)
		return
	}
	r.ShouldNotCall("writeEarlyHints")
}

// FlushHeaders is a no-op on synthetic responses.
func (r *Response) FlushHeaders() {
	if o, ok := r.Origin(); ok {
		o.FlushHeaders()
	}
}

// SetDefaultEncoding sets the encoding of string writes.
func (r *Response) SetDefaultEncoding(encoding string) web.Response {
	if o, ok := r.Origin(); ok {
		o.SetDefaultEncoding(encoding)
		return r
	}
	r.ShouldNotCall("setDefaultEncoding")

	return r
}
