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

// Well-known event names.
const (
	EventClose  = "close"
	EventEnd    = "end"
	EventError  = "error"
	EventFinish = "finish"
	EventData   = "data"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

// Subscription identifies a registered listener. Go functions are not
// comparable, so listeners are removed by subscription instead of by value.
type Subscription struct {
	Event string
	ID    uint64
}

// Events is a synchronous observer registry.
//
// Emit invokes listeners on the calling goroutine, in registration order,
// before returning.
type Events interface {
	// On appends a listener for event.
	On(event string, fn Listener) Subscription

	// Once appends a listener that is removed after its first invocation.
	Once(event string, fn Listener) Subscription

	// PrependListener adds a listener at the front of the list for event.
	PrependListener(event string, fn Listener) Subscription

	// PrependOnceListener adds a one-shot listener at the front of the list.
	PrependOnceListener(event string, fn Listener) Subscription

	// Off removes the listener identified by sub and reports whether it was registered.
	Off(sub Subscription) bool

	// Emit calls every listener of event and reports whether there were any.
	Emit(event string, args ...any) bool

	// Listeners returns a copy of the listeners registered for event.
	Listeners(event string) []Listener

	// ListenerCount returns the number of listeners registered for event.
	ListenerCount(event string) int

	// EventNames returns the events that have listeners, in first-registration order.
	EventNames() []string

	// RemoveAllListeners drops the listeners of the given events, or of all
	// events when none are given.
	RemoveAllListeners(events ...string)

	// SetMaxListeners sets the per-event listener count above which a warning
	// is logged. Zero disables the warning.
	SetMaxListeners(n int)

	// MaxListeners returns the current warning threshold.
	MaxListeners() int
}

// Properties is an overflow bag for values without a typed accessor.
type Properties interface {
	// Value returns the value stored under key.
	Value(key string) (any, bool)

	// SetValue stores value under key.
	SetValue(key string, value any)

	// DeleteValue removes key.
	DeleteValue(key string)

	// Values returns a shallow copy of the bag.
	Values() map[string]any
}

// Carrier is implemented by every request, response and application.
type Carrier interface {
	Events
	Properties
}
