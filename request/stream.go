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
	"io"
	"iter"
	"time"

	"rivaas.dev/httpmock/web"
)

// Accepts returns the best offer for the Accept header.
func (r *Request) Accepts(offers ...string) string {
	if o, ok := r.Origin(); ok {
		return o.Accepts(offers...)
	}

	return ""
}

// AcceptsCharsets returns the best offer for Accept-Charset.
func (r *Request) AcceptsCharsets(offers ...string) string {
	if o, ok := r.Origin(); ok {
		return o.AcceptsCharsets(offers...)
	}

	return ""
}

// AcceptsEncodings returns the best offer for Accept-Encoding.
func (r *Request) AcceptsEncodings(offers ...string) string {
	if o, ok := r.Origin(); ok {
		return o.AcceptsEncodings(offers...)
	}

	return ""
}

// AcceptsLanguages returns the best offer for Accept-Language.
func (r *Request) AcceptsLanguages(offers ...string) string {
	if o, ok := r.Origin(); ok {
		return o.AcceptsLanguages(offers...)
	}

	return ""
}

// Is matches the Content-Type header against types.
func (r *Request) Is(types ...string) string {
	if o, ok := r.Origin(); ok {
		return o.Is(types...)
	}

	return ""
}

// Range parses the Range header. Synthetic requests have no range.
func (r *Request) Range(size int64, combine bool) (*web.Ranges, error) {
	if o, ok := r.Origin(); ok {
		return o.Range(size, combine)
	}

	return nil, nil
}

// Read implements [io.Reader]. Synthetic requests are always at EOF.
func (r *Request) Read(p []byte) (int, error) {
	if o, ok := r.Origin(); ok {
		return o.Read(p)
	}

	return 0, io.EOF
}

// Pipe copies the body to w.
func (r *Request) Pipe(w io.Writer) (int64, error) {
	if o, ok := r.Origin(); ok {
		return o.Pipe(w)
	}

	return 0, nil
}

// Push queues a chunk for reading. It reports whether more may be pushed.
func (r *Request) Push(chunk []byte) bool {
	if o, ok := r.Origin(); ok {
		return o.Push(chunk)
	}

	return false
}

// Unshift puts a chunk back at the front of the body.
func (r *Request) Unshift(chunk []byte) {
	if o, ok := r.Origin(); ok {
		o.Unshift(chunk)
	}
}

// Pause stops the body stream.
func (r *Request) Pause() web.Request {
	if o, ok := r.Origin(); ok {
		o.Pause()
	}

	return r
}

// Resume restarts a paused body stream.
func (r *Request) Resume() web.Request {
	if o, ok := r.Origin(); ok {
		o.Resume()
	}

	return r
}

// IsPaused reports whether the body stream is paused.
func (r *Request) IsPaused() bool {
	if o, ok := r.Origin(); ok {
		return o.IsPaused()
	}

	return false
}

// SetEncoding sets the encoding of the body chunks.
func (r *Request) SetEncoding(encoding string) web.Request {
	if o, ok := r.Origin(); ok {
		o.SetEncoding(encoding)
	}

	return r
}

// SetTimeout is forwarded to a wrapped request. Synthetic requests never fire fn.
func (r *Request) SetTimeout(d time.Duration, fn func()) web.Request {
	if o, ok := r.Origin(); ok {
		o.SetTimeout(d, fn)
	}

	return r
}

// Destroy closes the body stream.
func (r *Request) Destroy(err error) web.Request {
	if o, ok := r.Origin(); ok {
		o.Destroy(err)
		return r
	}
	r.destroyed = true

	return r
}

// Destroyed reports whether Destroy was called.
func (r *Request) Destroyed() bool {
	if o, ok := r.Origin(); ok {
		return o.Destroyed()
	}

	return r.destroyed
}

// Chunks iterates over the body. Synthetic requests yield nothing.
func (r *Request) Chunks() iter.Seq[[]byte] {
	if o, ok := r.Origin(); ok {
		return o.Chunks()
	}

	return func(func([]byte) bool) {}
}

// Map iterates over the body chunks transformed by fn.
func (r *Request) Map(fn func([]byte) []byte) iter.Seq[[]byte] {
	if o, ok := r.Origin(); ok {
		return o.Map(fn)
	}

	return func(func([]byte) bool) {}
}

// Filter iterates over the body chunks fn keeps.
func (r *Request) Filter(fn func([]byte) bool) iter.Seq[[]byte] {
	if o, ok := r.Origin(); ok {
		return o.Filter(fn)
	}

	return func(func([]byte) bool) {}
}

// Reduce folds the body chunks. Synthetic requests return initial.
func (r *Request) Reduce(fn func(acc any, chunk []byte) any, initial any) any {
	if o, ok := r.Origin(); ok {
		return o.Reduce(fn, initial)
	}

	return initial
}

// Collect returns every body chunk.
func (r *Request) Collect() [][]byte {
	if o, ok := r.Origin(); ok {
		return o.Collect()
	}

	return nil
}
