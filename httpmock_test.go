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

package httpmock_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock"
	"rivaas.dev/httpmock/application"
	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/native"
	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/service"
	"rivaas.dev/httpmock/web"
)

func TestFakeCall_Wiring(t *testing.T) {
	t.Parallel()

	m := httpmock.New()
	var got *response.Prepared
	nextCalled := false
	call := m.FakeCall(
		&service.Descriptor{Method: "get", URL: "/items/1?x=2"},
		func(p *response.Prepared) { got = p },
		httpmock.FakeCallOptions{Next: func(error) { nextCalled = true }},
	)

	require.NotEmpty(t, call.ID)
	assert.True(t, call.Req.IsFake())
	assert.True(t, call.Res.IsFake())
	assert.True(t, call.App.IsFake())
	assert.Same(t, call.Res, call.Req.Res())
	assert.Same(t, call.App, call.Req.App())
	assert.Same(t, call.App, call.Res.App())
	assert.Same(t, call.Req, call.Res.Req())

	assert.Equal(t, http.MethodGet, call.Req.Method())
	assert.Equal(t, "/items/1", call.Req.Path())
	assert.Equal(t, "2", call.Req.Query().Get("x"))

	base := call.Req.Locals().Scope.Base
	assert.Equal(t, call.ID, base[httpmock.CallIDKey])
	assert.IsType(t, time.Time{}, base[httpmock.StartedAtKey])

	call.Next(nil)
	assert.True(t, nextCalled)

	call.Res.Status(http.StatusCreated).JSON(map[string]any{"id": 1})
	require.NotNil(t, got)
	assert.Equal(t, http.StatusCreated, got.Status)
	assert.Equal(t, map[string]any{"id": 1}, got.Data)
}

func TestFakeCall_Options(t *testing.T) {
	t.Parallel()

	t.Run("application is cloned", func(t *testing.T) {
		t.Parallel()

		origin := native.NewApp()
		call := httpmock.New().FakeCall(nil, nil, httpmock.FakeCallOptions{App: origin})

		wrapped, ok := call.App.(*application.Application)
		require.True(t, ok)
		assert.Equal(t, facade.OriginBacked, wrapped.Mode())
		assert.False(t, call.App.IsFake())
	})

	t.Run("application comes from the seed request", func(t *testing.T) {
		t.Parallel()

		app := application.New()
		seed := httpmock.New().FakeCall(nil, nil, httpmock.FakeCallOptions{App: app})
		call := httpmock.New().FakeCall(nil, nil, httpmock.FakeCallOptions{Req: seed.Req})

		assert.Same(t, app, call.App)
	})

	t.Run("missing descriptor uses the default", func(t *testing.T) {
		t.Parallel()

		call := httpmock.New().FakeCall(nil, nil, httpmock.FakeCallOptions{})
		assert.Equal(t, http.MethodGet, call.Req.Method())
		assert.Equal(t, "/", call.Req.URL())
		assert.Nil(t, call.Next)
	})

	t.Run("custom properties", func(t *testing.T) {
		t.Parallel()

		call := httpmock.New().FakeCall(nil, nil, httpmock.FakeCallOptions{
			Custom: map[string]any{"tenant": "acme", "method": "PUT"},
		})
		v, ok := call.Req.Value("tenant")
		assert.True(t, ok)
		assert.Equal(t, "acme", v)
		assert.Equal(t, http.MethodGet, call.Req.Method())
	})

	t.Run("mime lookup", func(t *testing.T) {
		t.Parallel()

		m := httpmock.New(httpmock.WithMIMELookup(func(string) string { return "application/x-custom" }))
		var got *response.Prepared
		call := m.FakeCall(nil, func(p *response.Prepared) { got = p }, httpmock.FakeCallOptions{})
		call.Res.Type("thing").Send("x")

		require.NotNil(t, got)
		assert.Equal(t, "application/x-custom", got.Headers.Get("Content-Type"))
	})
}

func TestCloneCall(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := native.NewRequest(httptest.NewRequest(http.MethodPatch, "/items/4", nil))
	res := native.NewResponse(w)

	m := httpmock.New()
	call := m.CloneCall(req, res)

	assert.False(t, call.Req.IsFake())
	assert.False(t, call.Res.IsFake())
	assert.Equal(t, http.MethodPatch, call.Req.Method())
	assert.Same(t, call.Res, call.Req.Res())
	assert.Equal(t, call.ID, req.Locals().Scope.Base[httpmock.CallIDKey])

	call.Res.Status(http.StatusAccepted).Send("done")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "done", w.Body.String())

	again := m.CloneCall(call.Req, call.Res)
	assert.Same(t, call.Req, again.Req)
	assert.Same(t, call.Res, again.Res)
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	m := httpmock.New()
	assert.Same(t, application.Fake(), m.FakeApp())
	assert.Same(t, application.Fake(), m.CloneApp(nil))

	req := m.FakeRequest(&service.Descriptor{Method: service.MethodDelete, URL: "/x"}, nil)
	assert.Same(t, req, m.CloneRequest(req))
	assert.Equal(t, http.MethodDelete, req.Method())

	res := m.FakeResponse(nil, nil)
	assert.Same(t, res, m.CloneResponse(res))
	res.End()
	assert.True(t, res.HeadersSent())
}

func TestOrigins_FirstWins(t *testing.T) {
	t.Parallel()

	o := httpmock.NewOrigins()
	req, res, app := o.Fork()
	assert.Nil(t, req)
	assert.Nil(t, res)
	assert.Nil(t, app)
	assert.False(t, o.Init(nil))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if o.Init(native.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.True(t, o.Captured())
	req, res, app = o.Fork()
	assert.NotNil(t, req)
	assert.Nil(t, res)
	assert.Nil(t, app)
}

// captureFirst serves one real request through an application that
// captures its first origins.
func captureFirst(t *testing.T, m *httpmock.Mock) *native.App {
	t.Helper()

	app := native.NewApp()
	app.Use(m.Capture())
	app.Get("/", func(_ web.Request, res web.Response, _ web.Next) { res.Send("real") })
	app.Post("/items", func(req web.Request, res web.Response, _ web.Next) {
		res.Status(http.StatusCreated).JSON(req.Body())
	})

	r := httptest.NewRequest(http.MethodGet, "/?debug=1", nil)
	r.Header.Set("X-Secret", "1")
	r.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	require.Equal(t, "real", w.Body.String())
	require.True(t, m.Origins().Captured())

	return app
}

func TestForBulk(t *testing.T) {
	t.Parallel()

	m := httpmock.New()
	captureFirst(t, m)

	firstReq, firstRes, firstApp := m.Fork()
	require.NotNil(t, firstRes)
	require.NotNil(t, firstApp)
	assert.Empty(t, firstReq.Method())
	assert.Empty(t, firstReq.URL())
	assert.Empty(t, firstReq.Path())
	assert.Nil(t, firstReq.Body())
	assert.Empty(t, firstReq.Headers())
	assert.Empty(t, firstReq.Cookies())
	assert.Empty(t, firstReq.Params())
	assert.Nil(t, firstReq.Route())
	assert.Empty(t, firstReq.Accepts("json"))
	for range firstReq.Chunks() {
		t.Fatal("first request yielded a body chunk")
	}

	var got *response.Prepared
	call := m.ForBulk(nil, &service.Descriptor{
		Method: service.MethodPost,
		URL:    "/items",
		Body:   map[string]any{"name": "x"},
	}, func(p *response.Prepared) { got = p }, map[string]any{"tenant": "acme"})

	assert.True(t, call.Req.IsFake())
	assert.Equal(t, http.MethodPost, call.Req.Method())
	assert.Equal(t, "/items", call.Req.URL())
	assert.Equal(t, map[string]any{"name": "x"}, call.Req.Body())
	assert.Same(t, firstApp, call.App)
	assert.Same(t, firstApp, call.Res.App())
	assert.Empty(t, call.Req.Header("X-Secret"))
	assert.Empty(t, call.Req.Cookies())
	assert.Equal(t, "example.com", call.Req.Hostname())
	v, _ := call.Req.Value("tenant")
	assert.Equal(t, "acme", v)

	call.App.Handle(call.Req, call.Res, nil)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusCreated, got.Status)
	assert.Equal(t, map[string]any{"name": "x"}, got.Data)

	other := m.ForBulk(native.NewRequest(httptest.NewRequest(http.MethodGet, "/other", nil)), nil, nil, nil)
	assert.Same(t, firstApp, other.App)
}

func TestFork_FirstRequestHidesBodyAndHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/first", strings.NewReader("secret-body"))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "text/html")
	r.Header.Set("Range", "bytes=0-3")
	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	orig := native.NewRequest(r)

	m := httpmock.New()
	require.True(t, m.Init(orig))
	first, _, _ := m.Fork()
	require.NotNil(t, first)

	t.Run("body stream is drained", func(t *testing.T) {
		var chunks [][]byte
		for c := range first.Chunks() {
			chunks = append(chunks, c)
		}
		assert.Empty(t, chunks)
		for range first.Map(func(b []byte) []byte { return b }) {
			t.Fatal("map yielded a chunk")
		}
		for range first.Filter(func([]byte) bool { return true }) {
			t.Fatal("filter yielded a chunk")
		}
		assert.Equal(t, "init", first.Reduce(func(acc any, _ []byte) any { return "chunk" }, "init"))
		assert.False(t, first.Push([]byte("more")))
		first.Unshift([]byte("more"))
		assert.Nil(t, first.Collect())
	})

	t.Run("negotiation sees no headers", func(t *testing.T) {
		assert.Empty(t, first.Is("json"))
		assert.Empty(t, first.Accepts("html"))
		assert.Empty(t, first.AcceptsLanguages("en"))
		ranges, err := first.Range(100, false)
		require.NoError(t, err)
		assert.Nil(t, ranges)
		assert.False(t, first.XHR())
		assert.False(t, first.Fresh())
	})

	t.Run("stream control does not reach the real request", func(t *testing.T) {
		assert.Same(t, first, first.Destroy(nil))
		assert.Same(t, first, first.Pause())
		assert.False(t, orig.Destroyed())
		assert.False(t, orig.IsPaused())
		assert.Equal(t, "json", orig.Is("json"))
	})

	t.Run("derived calls start clean", func(t *testing.T) {
		call := m.ForBulk(nil, nil, nil, nil)
		assert.Empty(t, call.Req.Is("json"))
		assert.Nil(t, call.Req.Collect())
	})
}
