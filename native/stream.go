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
	"io"
	"iter"
	"time"

	"rivaas.dev/httpmock/web"
)

const chunkSize = 32 << 10

// Read reads unshifted chunks first, then the request body.
func (q *Request) Read(p []byte) (int, error) {
	if q.destroyed {
		return 0, io.ErrClosedPipe
	}
	if len(q.pending) > 0 {
		n := copy(p, q.pending[0])
		if n < len(q.pending[0]) {
			q.pending[0] = q.pending[0][n:]
		} else {
			q.pending = q.pending[1:]
		}

		return n, nil
	}
	if q.r.Body == nil {
		return 0, io.EOF
	}

	n, err := q.r.Body.Read(p)
	if n > 0 {
		q.Emit(web.EventData, p[:n])
	}
	if errors.Is(err, io.EOF) {
		q.Emit(web.EventEnd)
	}

	return n, err
}

func (q *Request) Pipe(w io.Writer) (int64, error) {
	return io.Copy(w, readerOnly{q})
}

// readerOnly hides the io.WriterTo of the body so Pipe goes through Read.
type readerOnly struct{ io.Reader }

// Push queues chunk behind the pending data.
func (q *Request) Push(chunk []byte) bool {
	if q.destroyed {
		return false
	}
	q.pending = append(q.pending, append([]byte(nil), chunk...))

	return !q.paused
}

func (q *Request) Unshift(chunk []byte) {
	q.pending = append([][]byte{append([]byte(nil), chunk...)}, q.pending...)
}

func (q *Request) Pause() web.Request {
	q.paused = true
	return q
}

func (q *Request) Resume() web.Request {
	q.paused = false
	return q
}

func (q *Request) IsPaused() bool { return q.paused }

// SetEncoding is accepted for compatibility; bodies are always bytes.
func (q *Request) SetEncoding(string) web.Request { return q }

// SetTimeout runs fn after d on a separate goroutine. The request context
// cancels the timer.
func (q *Request) SetTimeout(d time.Duration, fn func()) web.Request {
	if fn == nil {
		return q
	}
	ctx := q.r.Context()
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			fn()
		case <-ctx.Done():
		}
	}()

	return q
}

func (q *Request) Destroy(err error) web.Request {
	if q.destroyed {
		return q
	}
	q.destroyed = true
	if q.r.Body != nil {
		_ = q.r.Body.Close()
	}
	if err != nil {
		q.Emit(web.EventError, err)
	}
	q.Emit(web.EventClose)

	return q
}

func (q *Request) Destroyed() bool { return q.destroyed }

func (q *Request) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		buf := make([]byte, chunkSize)
		for {
			n, err := q.Read(buf)
			if n > 0 && !yield(append([]byte(nil), buf[:n]...)) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

func (q *Request) Map(fn func([]byte) []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for chunk := range q.Chunks() {
			if !yield(fn(chunk)) {
				return
			}
		}
	}
}

func (q *Request) Filter(fn func([]byte) bool) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for chunk := range q.Chunks() {
			if fn(chunk) && !yield(chunk) {
				return
			}
		}
	}
}

func (q *Request) Reduce(fn func(acc any, chunk []byte) any, initial any) any {
	acc := initial
	for chunk := range q.Chunks() {
		acc = fn(acc, chunk)
	}

	return acc
}

func (q *Request) Collect() [][]byte {
	var out [][]byte
	for chunk := range q.Chunks() {
		out = append(out, chunk)
	}

	return out
}
