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

// Package logtest captures slog output for assertions in tests.
package logtest

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// Entry is one parsed log record.
type Entry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return bytes.Clone(b.buf.Bytes())
}

func (b *lockedBuffer) reset() {
	b.mu.Lock()
	b.buf.Reset()
	b.mu.Unlock()
}

// Recorder is a debug-level JSON logger writing to memory.
type Recorder struct {
	Logger *slog.Logger
	out    *lockedBuffer
}

// New creates an empty recorder.
func New() *Recorder {
	out := &lockedBuffer{}

	return &Recorder{
		Logger: slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})),
		out:    out,
	}
}

// Entries parses every record written so far.
func (r *Recorder) Entries() ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(r.out.snapshot()))
	for scanner.Scan() {
		var raw map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, err
		}

		e := Entry{Attrs: make(map[string]any)}
		e.Message, _ = raw["msg"].(string)
		e.Level, _ = raw["level"].(string)
		for k, v := range raw {
			if k != "time" && k != "level" && k != "msg" {
				e.Attrs[k] = v
			}
		}
		entries = append(entries, e)
	}

	return entries, scanner.Err()
}

// Count returns the number of records with message msg.
func (r *Recorder) Count(msg string) int {
	entries, err := r.Entries()
	if err != nil {
		return 0
	}

	n := 0
	for _, e := range entries {
		if e.Message == msg {
			n++
		}
	}

	return n
}

// Contains reports whether a record with message msg carries key=value.
// An empty key matches on the message alone.
func (r *Recorder) Contains(msg, key string, value any) bool {
	entries, err := r.Entries()
	if err != nil {
		return false
	}

	for _, e := range entries {
		if e.Message != msg {
			continue
		}
		if key == "" {
			return true
		}
		if v, ok := e.Attrs[key]; ok && fmt.Sprint(v) == fmt.Sprint(value) {
			return true
		}
	}

	return false
}

// Reset drops every recorded entry.
func (r *Recorder) Reset() { r.out.reset() }
