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
	"io"
	"log/slog"
	"reflect"
	"sync"

	"rivaas.dev/httpmock/web"
)

// Mode is the backing mode of a facade.
type Mode int

const (
	// Synthetic facades keep their state locally.
	Synthetic Mode = iota

	// OriginBacked facades forward to a wrapped real object.
	OriginBacked
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Synthetic:
		return "synthetic"
	case OriginBacked:
		return "origin"
	default:
		return "unknown"
	}
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Base is the mode switch shared by every facade.
//
// The zero value is not usable; create one with [NewBase]. Facades embed a
// *Base so the [web.Events] and [web.Properties] methods are promoted.
type Base[O web.Carrier] struct {
	kind   string
	logger *slog.Logger

	mu      sync.RWMutex
	origin  O
	bound   bool
	written bool

	props  *Properties
	events *Emitter
}

// NewBase creates a synthetic base. kind names the facade in log records.
func NewBase[O web.Carrier](kind string, logger *slog.Logger) *Base[O] {
	if logger == nil {
		logger = DiscardLogger()
	}

	return &Base[O]{
		kind:   kind,
		logger: logger,
		props:  &Properties{},
		events: NewEmitter(logger),
	}
}

// Kind returns the facade kind given to [NewBase].
func (b *Base[O]) Kind() string { return b.kind }

// Logger returns the facade logger.
func (b *Base[O]) Logger() *slog.Logger { return b.logger }

// Mode returns the current mode.
func (b *Base[O]) Mode() Mode {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.bound {
		return OriginBacked
	}

	return Synthetic
}

// Origin returns the wrapped object and whether the facade is origin-backed.
func (b *Base[O]) Origin() (O, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.origin, b.bound
}

// SetOrigin binds the facade to origin. It fails when the facade is already
// bound, when local state was written, or when origin is nil.
func (b *Base[O]) SetOrigin(origin O) error {
	if IsNil(origin) {
		return ErrNilOrigin
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bound {
		return ErrOriginBound
	}
	if b.written {
		return ErrStateInUse
	}
	b.origin = origin
	b.bound = true

	return nil
}

// Touch records that local state was written. A touched facade can no longer
// be bound.
func (b *Base[O]) Touch() {
	b.mu.Lock()
	b.written = true
	b.mu.Unlock()
}

// ShouldNotCall logs that a framework method was invoked on a synthetic facade.
func (b *Base[O]) ShouldNotCall(fn string, attrs ...any) {
	b.logger.Warn("should not be called", append([]any{"kind", b.kind, "fn", fn}, attrs...)...)
}

// Unsupported logs that a feature without an in-memory equivalent was used.
func (b *Base[O]) Unsupported(fn string, attrs ...any) {
	b.logger.Warn("unsupported.feature", append([]any{"kind", b.kind, "fn", fn}, attrs...)...)
}

// IsNil reports whether v is nil or an interface holding a nil pointer.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func (b *Base[O]) carrierEvents() web.Events {
	if o, ok := b.Origin(); ok {
		return o
	}

	return b.events
}

// Value implements [web.Properties].
func (b *Base[O]) Value(key string) (any, bool) {
	if o, ok := b.Origin(); ok {
		return o.Value(key)
	}

	return b.props.Value(key)
}

// SetValue implements [web.Properties].
func (b *Base[O]) SetValue(key string, value any) {
	if o, ok := b.Origin(); ok {
		o.SetValue(key, value)
		return
	}
	b.Touch()
	b.props.SetValue(key, value)
}

// DeleteValue implements [web.Properties].
func (b *Base[O]) DeleteValue(key string) {
	if o, ok := b.Origin(); ok {
		o.DeleteValue(key)
		return
	}
	b.props.DeleteValue(key)
}

// Values implements [web.Properties].
func (b *Base[O]) Values() map[string]any {
	if o, ok := b.Origin(); ok {
		return o.Values()
	}

	return b.props.Values()
}

// On implements [web.Events].
func (b *Base[O]) On(event string, fn web.Listener) web.Subscription {
	return b.subscribe().On(event, fn)
}

// Once implements [web.Events].
func (b *Base[O]) Once(event string, fn web.Listener) web.Subscription {
	return b.subscribe().Once(event, fn)
}

// PrependListener implements [web.Events].
func (b *Base[O]) PrependListener(event string, fn web.Listener) web.Subscription {
	return b.subscribe().PrependListener(event, fn)
}

// PrependOnceListener implements [web.Events].
func (b *Base[O]) PrependOnceListener(event string, fn web.Listener) web.Subscription {
	return b.subscribe().PrependOnceListener(event, fn)
}

func (b *Base[O]) subscribe() web.Events {
	if o, ok := b.Origin(); ok {
		return o
	}
	b.Touch()

	return b.events
}

// Off implements [web.Events].
func (b *Base[O]) Off(sub web.Subscription) bool { return b.carrierEvents().Off(sub) }

// Emit implements [web.Events].
func (b *Base[O]) Emit(event string, args ...any) bool {
	return b.carrierEvents().Emit(event, args...)
}

// Listeners implements [web.Events].
func (b *Base[O]) Listeners(event string) []web.Listener {
	return b.carrierEvents().Listeners(event)
}

// ListenerCount implements [web.Events].
func (b *Base[O]) ListenerCount(event string) int {
	return b.carrierEvents().ListenerCount(event)
}

// EventNames implements [web.Events].
func (b *Base[O]) EventNames() []string { return b.carrierEvents().EventNames() }

// RemoveAllListeners implements [web.Events].
func (b *Base[O]) RemoveAllListeners(events ...string) {
	b.carrierEvents().RemoveAllListeners(events...)
}

// SetMaxListeners implements [web.Events].
func (b *Base[O]) SetMaxListeners(n int) { b.carrierEvents().SetMaxListeners(n) }

// MaxListeners implements [web.Events].
func (b *Base[O]) MaxListeners() int { return b.carrierEvents().MaxListeners() }
