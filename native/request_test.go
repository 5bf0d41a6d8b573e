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
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/web"
)

func TestNegotiateType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		accept string
		offers []string
		want   string
	}{
		{"empty header takes first", "", []string{"json", "html"}, "json"},
		{"exact match", "application/json", []string{"html", "json"}, "json"},
		{"quality wins", "text/html, application/json;q=0.8", []string{"json", "html"}, "html"},
		{"wildcard", "*/*", []string{"xml", "json"}, "xml"},
		{"subtype wildcard", "text/*", []string{"json", "text/plain"}, "text/plain"},
		{"specific beats wildcard", "*/*;q=0.9, application/json;q=0.9", []string{"html", "json"}, "json"},
		{"q=0 rejects", "application/json;q=0", []string{"json"}, ""},
		{"no match", "image/png", []string{"json"}, ""},
		{"no offers", "application/json", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, negotiateType(tt.accept, tt.offers))
		})
	}
}

func TestNegotiate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "br", negotiate("gzip, deflate;q=0.8, br;q=1.0", []string{"deflate", "br"}))
	assert.Equal(t, "en", negotiate("en-US, fr;q=0.8", []string{"fr", "en"}))
	assert.Equal(t, "utf-8", negotiate("", []string{"utf-8"}))
	assert.Empty(t, negotiate("iso-8859-1", []string{"utf-8"}))
}

func TestMatchType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", matchType("application/json; charset=utf-8", []string{"html", "json"}))
	assert.Equal(t, "application/*", matchType("application/xml", []string{"application/*"}))
	assert.Equal(t, "*/*+json", matchType("application/vnd.api+json", []string{"*/*+json"}))
	assert.Empty(t, matchType("", []string{"json"}))
	assert.Empty(t, matchType("text/plain", []string{"json"}))
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		combine bool
		want    []web.ByteRange
		err     error
	}{
		{name: "single", header: "bytes=0-9", want: []web.ByteRange{{Start: 0, End: 9}}},
		{name: "open end", header: "bytes=90-", want: []web.ByteRange{{Start: 90, End: 99}}},
		{name: "suffix", header: "bytes=-10", want: []web.ByteRange{{Start: 90, End: 99}}},
		{name: "clamped end", header: "bytes=95-200", want: []web.ByteRange{{Start: 95, End: 99}}},
		{
			name:   "several",
			header: "bytes=0-4, 10-14",
			want:   []web.ByteRange{{Start: 0, End: 4}, {Start: 10, End: 14}},
		},
		{
			name:    "combined",
			header:  "bytes=10-14,0-4,5-7",
			combine: true,
			want:    []web.ByteRange{{Start: 0, End: 7}, {Start: 10, End: 14}},
		},
		{name: "past the end", header: "bytes=200-300", err: web.ErrRangeUnsatisfiable},
		{name: "no unit", header: "0-9", err: web.ErrRangeMalformed},
		{name: "garbage", header: "bytes=a-b", err: web.ErrRangeMalformed},
		{name: "inverted", header: "bytes=9-0", err: web.ErrRangeMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseRange(tt.header, 100, tt.combine)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bytes", got.Unit)
			assert.Equal(t, tt.want, got.Ranges)
		})
	}
}

func TestRequest_Fields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://api.v1.example.com:8080/items?page=2", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.1")
	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.Header.Set("Referrer", "https://ref.example")
	r.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	req := NewRequest(r)

	assert.Equal(t, "/items?page=2", req.URL())
	assert.Equal(t, "/items", req.Path())
	assert.Equal(t, "http", req.Protocol())
	assert.False(t, req.Secure())
	assert.Equal(t, "203.0.113.1", req.IP())
	assert.Equal(t, []string{"203.0.113.1", "198.51.100.1"}, req.IPs())
	assert.Equal(t, "api.v1.example.com:8080", req.Host())
	assert.Equal(t, "api.v1.example.com", req.Hostname())
	assert.Equal(t, []string{"v1", "api"}, req.Subdomains())
	assert.True(t, req.XHR())
	assert.Equal(t, "1.1", req.HTTPVersion())
	assert.Equal(t, "https://ref.example", req.Header("referer"))
	assert.Equal(t, map[string]string{"sid": "abc"}, req.Cookies())
	assert.Equal(t, url.Values{"page": {"2"}}, req.Query())

	req.SetURL("/other?x=1")
	assert.Equal(t, "/other", req.Path())
	assert.Equal(t, "/items?page=2", req.OriginalURL())

	req.SetCookies(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, "a=1; b=2", r.Header.Get("Cookie"))
}

func TestRequest_Body(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{"json", "application/json", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"vendor json", "application/vnd.api+json", `[true]`, []any{true}},
		{"yaml", "application/x-yaml", "a: 1\n", map[string]any{"a": 1}},
		{"form", "application/x-www-form-urlencoded", "a=1&a=2", url.Values{"a": {"1", "2"}}},
		{"text", "text/plain", "hello", "hello"},
		{"empty", "application/json", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)
			req := NewRequest(r)

			assert.Equal(t, tt.want, req.Body())

			rest, err := io.ReadAll(req)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(rest))
		})
	}
}

func TestRequest_Stream(t *testing.T) {
	t.Parallel()

	req := NewRequest(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("body")))
	req.Unshift([]byte("head-"))

	var events []string
	req.On(web.EventEnd, func(...any) { events = append(events, web.EventEnd) })

	chunks := req.Collect()
	assert.Equal(t, [][]byte{[]byte("head-"), []byte("body")}, chunks)
	assert.Equal(t, []string{web.EventEnd}, events)

	req.Destroy(nil)
	assert.True(t, req.Destroyed())
	_, err := req.Read(make([]byte, 1))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestRequest_Fresh(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("If-None-Match", `W/"v1"`)
	req := NewRequest(r)
	res := NewResponse(httptest.NewRecorder())
	req.SetRelations(nil, res, nil)

	assert.False(t, req.Fresh())
	res.Set("ETag", `"v1"`)
	assert.True(t, req.Fresh())
	assert.False(t, req.Stale())

	res.Set("ETag", `"v2"`)
	assert.True(t, req.Stale())
}

func TestRequest_Range(t *testing.T) {
	t.Parallel()

	req := NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	got, err := req.Range(100, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	req.Headers().Set("Range", "bytes=0-0")
	got, err = req.Range(100, false)
	require.NoError(t, err)
	assert.Equal(t, []web.ByteRange{{Start: 0, End: 0}}, got.Ranges)
}
