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

package facade

import (
	"log/slog"
	"slices"
	"sync"

	"rivaas.dev/httpmock/web"
)

// DefaultMaxListeners is the per-event listener count above which a warning is logged.
const DefaultMaxListeners = 10

type entry struct {
	id   uint64
	fn   web.Listener
	once bool
}

// Emitter is a synchronous [web.Events] implementation.
//
// Listeners run on the goroutine calling Emit. The registry itself is safe for
// concurrent use; listeners are invoked outside the lock.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]entry
	order     []string
	max       int
	warned    map[string]bool
	logger    *slog.Logger
}

var _ web.Events = (*Emitter)(nil)

// NewEmitter creates an empty registry. A nil logger discards warnings.
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = DiscardLogger()
	}

	return &Emitter{
		listeners: make(map[string][]entry),
		max:       DefaultMaxListeners,
		logger:    logger,
	}
}

func (e *Emitter) add(event string, fn web.Listener, once, prepend bool) web.Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	ent := entry{id: e.nextID, fn: fn, once: once}

	list, seen := e.listeners[event]
	if !seen || len(list) == 0 {
		if !slices.Contains(e.order, event) {
			e.order = append(e.order, event)
		}
	}
	if prepend {
		list = append([]entry{ent}, list...)
	} else {
		list = append(list, ent)
	}
	e.listeners[event] = list

	if e.max > 0 && len(list) > e.max && !e.warned[event] {
		if e.warned == nil {
			e.warned = make(map[string]bool)
		}
		e.warned[event] = true
		e.logger.Warn("possible listener leak", "event", event, "count", len(list), "max", e.max)
	}

	return web.Subscription{Event: event, ID: ent.id}
}

// On appends a listener for event.
func (e *Emitter) On(event string, fn web.Listener) web.Subscription {
	return e.add(event, fn, false, false)
}

// Once appends a listener that is removed after its first invocation.
func (e *Emitter) Once(event string, fn web.Listener) web.Subscription {
	return e.add(event, fn, true, false)
}

// PrependListener adds a listener at the front of the list for event.
func (e *Emitter) PrependListener(event string, fn web.Listener) web.Subscription {
	return e.add(event, fn, false, true)
}

// PrependOnceListener adds a one-shot listener at the front of the list.
func (e *Emitter) PrependOnceListener(event string, fn web.Listener) web.Subscription {
	return e.add(event, fn, true, true)
}

// Off removes the listener identified by sub.
func (e *Emitter) Off(sub web.Subscription) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeLocked(sub.Event, sub.ID)
}

func (e *Emitter) removeLocked(event string, id uint64) bool {
	list := e.listeners[event]
	for i, ent := range list {
		if ent.id == id {
			list = slices.Delete(list, i, i+1)
			if len(list) == 0 {
				delete(e.listeners, event)
				e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == event })
			} else {
				e.listeners[event] = list
			}

			return true
		}
	}

	return false
}

// Emit calls every listener of event in order and reports whether there were any.
func (e *Emitter) Emit(event string, args ...any) bool {
	e.mu.Lock()
	list := slices.Clone(e.listeners[event])
	for _, ent := range list {
		if ent.once {
			e.removeLocked(event, ent.id)
		}
	}
	e.mu.Unlock()

	for _, ent := range list {
		ent.fn(args...)
	}

	return len(list) > 0
}

// Listeners returns a copy of the listeners registered for event.
func (e *Emitter) Listeners(event string) []web.Listener {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[event]
	out := make([]web.Listener, 0, len(list))
	for _, ent := range list {
		out = append(out, ent.fn)
	}

	return out
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners[event])
}

// EventNames returns the events that have listeners.
func (e *Emitter) EventNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.order)
}

// RemoveAllListeners drops the listeners of events, or of every event when none are given.
func (e *Emitter) RemoveAllListeners(events ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(events) == 0 {
		clear(e.listeners)
		e.order = nil

		return
	}

	for _, event := range events {
		delete(e.listeners, event)
		e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == event })
	}
}

// SetMaxListeners sets the warning threshold. Zero disables the warning.
func (e *Emitter) SetMaxListeners(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < 0 {
		n = 0
	}
	e.max = n
}

// MaxListeners returns the warning threshold.
func (e *Emitter) MaxListeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.max
}
