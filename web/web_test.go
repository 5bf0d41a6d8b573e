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

package web_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/web"
)

func TestLookupMIME(t *testing.T) {
	t.Parallel()

	assert.Contains(t, web.LookupMIME("json"), "json")
	assert.Contains(t, web.LookupMIME(".json"), "json")
	assert.True(t, strings.HasPrefix(web.LookupMIME("html"), "text/html"))
	assert.Equal(t, "application/octet-stream", web.LookupMIME("zzq-unknown"))
}

func TestResolveType(t *testing.T) {
	t.Parallel()

	upper := func(name string) string { return "x/" + strings.ToUpper(name) }

	assert.Equal(t, "text/csv", web.ResolveType("text/csv", upper))
	assert.Equal(t, "x/CSV", web.ResolveType("csv", upper))
	assert.Equal(t, "application/octet-stream", web.ResolveType("zzq-unknown", nil))
}

func TestAppendVary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		fields   string
		want     string
	}{
		{"empty", "", "Accept", "Accept"},
		{"append", "Accept", "Origin", "Accept, Origin"},
		{"dedupe ignores case", "Accept", "accept, Origin", "Accept, Origin"},
		{"list", "", "Accept, , Origin", "Accept, Origin"},
		{"existing star", "*", "Accept", "*"},
		{"new star", "Accept", "*", "*"},
		{"nothing", "Accept", "", "Accept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, web.AppendVary(tt.existing, tt.fields))
		})
	}
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "attachment", web.ContentDisposition(""))
	assert.Equal(t, `attachment; filename="a b.pdf"`, web.ContentDisposition("a b.pdf"))
}

func TestCookieOptions_HTTPCookie(t *testing.T) {
	t.Parallel()

	t.Run("nil options", func(t *testing.T) {
		t.Parallel()

		var opts *web.CookieOptions
		c := opts.HTTPCookie("sid", "abc")
		assert.Equal(t, &http.Cookie{Name: "sid", Value: "abc", Path: "/"}, c)
	})

	t.Run("every option", func(t *testing.T) {
		t.Parallel()

		expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		c := (&web.CookieOptions{
			Path:     "/app",
			Domain:   "example.com",
			Secure:   true,
			HTTPOnly: true,
			SameSite: http.SameSiteStrictMode,
			Expires:  expires,
			Encode:   strings.ToUpper,
		}).HTTPCookie("sid", "abc")

		assert.Equal(t, "ABC", c.Value)
		assert.Equal(t, "/app", c.Path)
		assert.Equal(t, "example.com", c.Domain)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, expires, c.Expires)
		assert.Zero(t, c.MaxAge)
	})

	t.Run("max age", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		c := (&web.CookieOptions{MaxAge: time.Minute}).HTTPCookie("sid", "abc")
		assert.Equal(t, 60, c.MaxAge)
		assert.WithinDuration(t, before.Add(time.Minute), c.Expires, 5*time.Second)

		c = (&web.CookieOptions{MaxAge: time.Millisecond}).HTTPCookie("sid", "abc")
		assert.Equal(t, 1, c.MaxAge)
	})
}

func TestRoute_Clone(t *testing.T) {
	t.Parallel()

	var nilRoute *web.Route
	assert.Nil(t, nilRoute.Clone())

	r := &web.Route{
		Path:    "/items/:id",
		Stack:   []web.Layer{{Method: http.MethodGet, Path: "/items/:id"}},
		Methods: map[string]bool{http.MethodGet: true},
	}
	c := r.Clone()
	require.Equal(t, r, c)

	c.Stack[0].Path = "/changed"
	c.Methods[http.MethodPost] = true
	assert.Equal(t, "/items/:id", r.Stack[0].Path)
	assert.NotContains(t, r.Methods, http.MethodPost)
}

func TestLocals_Ensure(t *testing.T) {
	t.Parallel()

	l := (&web.Locals{}).Ensure()
	require.NotNil(t, l.Scope)
	assert.NotNil(t, l.Values)
	assert.NotNil(t, l.Scope.Context)
	assert.NotNil(t, l.Scope.Base)
	assert.NotNil(t, l.Scope.Isolated)
	assert.NotNil(t, l.Scope.Cache)

	kept := &web.Locals{Scope: &web.Scope{Base: map[string]any{"k": 1}}}
	assert.Same(t, kept, kept.Ensure())
	assert.Equal(t, 1, kept.Scope.Base["k"])
	assert.NotNil(t, kept.Scope.Cache)
}

func TestIsSentinel(t *testing.T) {
	t.Parallel()

	assert.True(t, web.IsSentinel(web.ErrNextRoute))
	assert.True(t, web.IsSentinel(fmt.Errorf("wrapped: %w", web.ErrNextRouter)))
	assert.False(t, web.IsSentinel(errors.New("route")))
	assert.False(t, web.IsSentinel(nil))
}
