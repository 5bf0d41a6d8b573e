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

package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/native"
	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/web"
)

func TestPrepared_Body(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    response.Prepared
		want string
	}{
		{"nil data", response.Prepared{}, ""},
		{"string", response.Prepared{Data: "hello"}, "hello"},
		{"bytes", response.Prepared{Data: []byte{0x41}}, "A"},
		{
			name: "json by default",
			p:    response.Prepared{Data: map[string]any{"ok": true}},
			want: `{"ok":true}`,
		},
		{
			name: "yaml by content type",
			p: response.Prepared{
				Headers: http.Header{"Content-Type": {"application/x-yaml"}},
				Data:    map[string]any{"ok": true},
			},
			want: "ok: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := tt.p.Body()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestPrepared_BodyError(t *testing.T) {
	t.Parallel()

	p := response.Prepared{Data: map[string]any{"ch": make(chan int)}}
	_, err := p.Body()
	require.Error(t, err)
}

func TestPrepared_ContentType(t *testing.T) {
	t.Parallel()

	p := response.Prepared{Headers: http.Header{"Content-Type": {"application/json; charset=utf-8"}}}
	assert.Equal(t, "application/json", p.ContentType())

	p = response.Prepared{Headers: http.Header{}}
	assert.Empty(t, p.ContentType())
}

func TestPrepared_Replay(t *testing.T) {
	t.Parallel()

	var got *response.Prepared
	res := response.Fake(func(p *response.Prepared) { got = p }, nil)
	res.Status(http.StatusCreated).
		Set("X-Item", "7").
		Cookie("sid", "abc", &web.CookieOptions{HTTPOnly: true}).
		ClearCookie("old", nil).
		JSON(map[string]any{"id": 7})
	require.NotNil(t, got)

	w := httptest.NewRecorder()
	require.NoError(t, got.Replay(w))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "7", w.Header().Get("X-Item"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	assert.Equal(t, "abc", byName["sid"].Value)
	assert.True(t, byName["sid"].HttpOnly)
	assert.Equal(t, -1, byName["old"].MaxAge)
}

func TestPrepared_ReplayDefaultsContentType(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	p := &response.Prepared{Data: "<p>hi</p>", Headers: http.Header{}}
	require.NoError(t, p.Replay(w))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", w.Body.String())
}

func TestPrepared_Duration(t *testing.T) {
	t.Parallel()

	var got *response.Prepared
	res := response.Fake(func(p *response.Prepared) { got = p }, nil)
	time.Sleep(2 * time.Millisecond)
	res.Send(nil)

	assert.GreaterOrEqual(t, got.Duration, 2*time.Millisecond)
}

func TestFake_OriginLocals(t *testing.T) {
	t.Parallel()

	origin := native.NewResponse(httptest.NewRecorder())
	origin.Locals()["user"] = "ada"

	res := response.Fake(nil, origin)
	assert.Equal(t, "ada", res.Locals()["user"])

	res.Locals()["user"] = "bob"
	assert.Equal(t, "ada", origin.Locals()["user"])
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("facade is returned unchanged", func(t *testing.T) {
		t.Parallel()

		fake := response.Fake(nil, nil)
		assert.Same(t, fake, response.Clone(fake))
	})

	t.Run("nil yields a synthetic response", func(t *testing.T) {
		t.Parallel()

		got := response.Clone(nil)
		require.NotNil(t, got)
		assert.True(t, got.IsFake())
	})

	t.Run("real response is wrapped", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		origin := native.NewResponse(w)
		got := response.Clone(origin)

		wrapped, ok := got.(*response.Response)
		require.True(t, ok)
		assert.Equal(t, facade.OriginBacked, wrapped.Mode())
		assert.Same(t, wrapped, response.Clone(wrapped))
		assert.False(t, got.IsFake())

		got.Status(http.StatusAccepted).Set("X-A", "1").JSON(map[string]any{"ok": true})

		assert.True(t, origin.HeadersSent())
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-A"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})
}

func TestSetRelations_Once(t *testing.T) {
	t.Parallel()

	res := response.Fake(nil, nil)
	first := native.NewApp()
	res.SetRelations(first, nil)
	res.SetRelations(native.NewApp(), nil)

	assert.Same(t, first, res.App())
	assert.Nil(t, res.Req())
}
