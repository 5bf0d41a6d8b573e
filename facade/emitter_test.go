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

package facade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/internal/logtest"
	"rivaas.dev/httpmock/web"
)

func TestEmitter_EmptyDefaults(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	assert.False(t, e.Emit(web.EventFinish))
	assert.Equal(t, 0, e.ListenerCount(web.EventFinish))
	assert.Empty(t, e.EventNames())
	assert.Empty(t, e.Listeners(web.EventFinish))
	assert.False(t, e.Off(web.Subscription{Event: "x", ID: 42}))
	assert.Equal(t, facade.DefaultMaxListeners, e.MaxListeners())
	assert.NotPanics(t, func() { e.RemoveAllListeners() })
}

func TestEmitter_Order(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	var got []string
	e.On("data", func(...any) { got = append(got, "a") })
	e.On("data", func(...any) { got = append(got, "b") })
	e.PrependListener("data", func(...any) { got = append(got, "first") })

	require.True(t, e.Emit("data"))
	assert.Equal(t, []string{"first", "a", "b"}, got)
}

func TestEmitter_OnceAndOff(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	var onceCalls, onCalls int
	e.Once("end", func(...any) { onceCalls++ })
	sub := e.On("end", func(...any) { onCalls++ })

	e.Emit("end")
	e.Emit("end")
	assert.Equal(t, 1, onceCalls)
	assert.Equal(t, 2, onCalls)

	assert.True(t, e.Off(sub))
	assert.False(t, e.Off(sub))
	assert.False(t, e.Emit("end"))
	assert.Empty(t, e.EventNames())
}

func TestEmitter_PrependOnce(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	var got []int
	e.On("x", func(...any) { got = append(got, 2) })
	e.PrependOnceListener("x", func(...any) { got = append(got, 1) })

	e.Emit("x")
	e.Emit("x")
	assert.Equal(t, []int{1, 2, 2}, got)
}

func TestEmitter_Args(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	var got []any
	e.On("error", func(args ...any) { got = args })
	e.Emit("error", "boom", 7)

	assert.Equal(t, []any{"boom", 7}, got)
}

func TestEmitter_EventNamesAndRemove(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	noop := func(...any) {}
	e.On("b", noop)
	e.On("a", noop)
	e.On("b", noop)

	assert.Equal(t, []string{"b", "a"}, e.EventNames())
	assert.Equal(t, 2, e.ListenerCount("b"))

	e.RemoveAllListeners("b")
	assert.Equal(t, []string{"a"}, e.EventNames())

	e.RemoveAllListeners()
	assert.Empty(t, e.EventNames())
}

func TestEmitter_MaxListenersWarning(t *testing.T) {
	t.Parallel()

	rec := logtest.New()
	e := facade.NewEmitter(rec.Logger)
	e.SetMaxListeners(2)

	for range 4 {
		e.On("data", func(...any) {})
	}

	assert.Equal(t, 4, e.ListenerCount("data"))
	assert.Equal(t, 1, rec.Count("possible listener leak"))
	assert.True(t, rec.Contains("possible listener leak", "event", "data"))
}

func TestEmitter_SetMaxListenersNegative(t *testing.T) {
	t.Parallel()

	e := facade.NewEmitter(nil)
	e.SetMaxListeners(-3)
	assert.Equal(t, 0, e.MaxListeners())
}
