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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/web"
)

func TestAppend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stage func(r *response.Response)
		want  []string
	}{
		{
			name: "append twice",
			stage: func(r *response.Response) {
				r.Append("X-Trace", "v1").Append("X-Trace", "v2")
			},
			want: []string{"v1", "v2"},
		},
		{
			name: "set then append",
			stage: func(r *response.Response) {
				r.Set("X-Trace", "v").Append("X-Trace", "v2")
			},
			want: []string{"v", "v2"},
		},
		{
			name: "append several values at once",
			stage: func(r *response.Response) {
				r.AppendHeader("x-trace", "a", "b")
			},
			want: []string{"a", "b"},
		},
		{
			name: "set replaces",
			stage: func(r *response.Response) {
				r.Append("X-Trace", "a").Header("X-Trace", "b")
			},
			want: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got *response.Prepared
			r := response.Fake(func(p *response.Prepared) { got = p }, nil)
			tt.stage(r)

			assert.Equal(t, tt.want, r.GetHeader("X-Trace"))
			r.Send(nil)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Headers.Values("X-Trace"))
		})
	}
}

func TestHeaderReads(t *testing.T) {
	t.Parallel()

	r := response.Fake(nil, nil)
	r.SetFields(map[string]string{"X-B": "2", "X-A": "1"})
	r.SetHeader("X-Multi", "a", "b")

	assert.Equal(t, "1", r.Get("x-a"))
	assert.Equal(t, "a, b", r.Get("X-Multi"))
	assert.Equal(t, []string{"X-A", "X-B", "X-Multi"}, r.GetHeaderNames())
	assert.True(t, r.HasHeader("x-b"))
	assert.False(t, r.HasHeader("X-C"))

	headers := r.GetHeaders()
	headers.Set("X-A", "changed")
	assert.Equal(t, "1", r.Get("X-A"))

	r.RemoveHeader("X-A")
	assert.False(t, r.HasHeader("X-A"))

	r.Set("X-B")
	assert.False(t, r.HasHeader("X-B"))

	r.SetHeaders(http.Header{"x-only": {"1"}})
	assert.Equal(t, []string{"X-Only"}, r.GetHeaderNames())
}

func TestCookies(t *testing.T) {
	t.Parallel()

	var got *response.Prepared
	r := response.Fake(func(p *response.Prepared) { got = p }, nil)
	opts := &web.CookieOptions{Path: "/api", HTTPOnly: true}

	r.ClearCookie("sid", opts).
		ClearCookie("theme", nil).
		Cookie("sid", "abc", nil).
		CookieMap(map[string]string{"a": "1", "b": "2"}, opts)
	r.Send(nil)

	require.NotNil(t, got)
	assert.NotContains(t, got.ClearedCookies, "sid")
	assert.Contains(t, got.ClearedCookies, "theme")
	assert.Equal(t, "abc", got.Cookies["sid"].Value)
	assert.Equal(t, "1", got.Cookies["a"].Value)
	assert.Equal(t, "/api", got.Cookies["b"].Options.Path)

	opts.Path = "/changed"
	assert.Equal(t, "/api", got.Cookies["b"].Options.Path)
}

func TestType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"json", "application/json"},
		{".json", "application/json"},
		{"text/plain", "text/plain"},
		{"application/vnd.api+json", "application/vnd.api+json"},
		{"no-such-extension-xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			r := response.Fake(nil, nil)
			r.Type(tt.in)
			assert.Contains(t, r.Get("Content-Type"), tt.want)
		})
	}
}

func TestType_InjectedLookup(t *testing.T) {
	t.Parallel()

	var asked []string
	lookup := func(name string) string {
		asked = append(asked, name)
		return "application/x-" + name
	}
	r := response.Fake(nil, nil, response.WithMIMELookup(lookup))

	r.ContentType("custom")
	assert.Equal(t, "application/x-custom", r.Get("Content-Type"))

	r.Type("text/csv")
	assert.Equal(t, "text/csv", r.Get("Content-Type"))
	assert.Equal(t, []string{"custom"}, asked)
}

func TestVary(t *testing.T) {
	t.Parallel()

	r := response.Fake(nil, nil)
	r.Vary("Accept").Vary("accept").Vary("Origin, Accept-Encoding")

	assert.Equal(t, "Accept, Origin, Accept-Encoding", r.Get("Vary"))

	r.Vary("*")
	assert.Equal(t, "*", r.Get("Vary"))
}

func TestLinksAndAttachment(t *testing.T) {
	t.Parallel()

	r := response.Fake(nil, nil)
	r.Links(map[string]string{
		"next": "/items?page=3",
		"last": "/items?page=9",
	})
	r.Attachment("report.pdf")

	assert.Equal(t, []string{
		`</items?page=9>; rel="last"`,
		`</items?page=3>; rel="next"`,
	}, r.GetHeader("Link"))
	assert.Equal(t, `attachment; filename="report.pdf"`, r.Get("Content-Disposition"))

	r.Attachment("")
	assert.Equal(t, "attachment", r.Get("Content-Disposition"))
}

func TestNilResolver(t *testing.T) {
	t.Parallel()

	r := response.Fake(nil, nil)
	assert.NotPanics(t, func() { r.JSON(map[string]any{"ok": true}) })
	assert.True(t, r.HeadersSent())
}

func TestCharsetAndStatusMessage(t *testing.T) {
	t.Parallel()

	var got *response.Prepared
	r := response.Fake(func(p *response.Prepared) { got = p }, nil)
	r.SetCharset("utf-8").SetStatusMessage("Created").Status(http.StatusCreated)

	assert.Equal(t, "utf-8", r.Charset())
	assert.Equal(t, "Created", r.StatusMessage())
	r.Send(nil)
	assert.Equal(t, "Created", got.StatusMessage)
}
