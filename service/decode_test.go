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

package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/httpmock/service"
)

func TestFromMap(t *testing.T) {
	t.Parallel()

	d, err := service.FromMap(map[string]any{
		"method": "post",
		"url":    "/items",
		"body":   map[string]any{"name": "x"},
		"headers": map[string]any{
			"Accept":  "application/json",
			"X-Trace": []any{"a", "b"},
		},
		"cookies":       map[string]any{"n": 1},
		"signedCookies": map[string]any{"sid": "abc"},
	})
	require.NoError(t, err)

	assert.Equal(t, service.Method("post"), d.Method)
	assert.Equal(t, "/items", d.URL)
	assert.Equal(t, map[string]any{"name": "x"}, d.Body)
	assert.Equal(t, service.Header{"application/json"}, d.Headers["Accept"])
	assert.Equal(t, service.Header{"a", "b"}, d.Headers["X-Trace"])
	assert.Equal(t, "1", d.Cookies["n"])
	assert.Equal(t, "abc", d.SignedCookies["sid"])
	assert.True(t, d.Valid())
}

func TestFromMap_TypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := service.FromMap(map[string]any{"headers": 12})
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	src := `
method: PUT
url: /items/7
body:
  name: x
  tags: [a, b]
headers:
  Accept: application/json
  X-Trace: [a, b]
cookies:
  sid: "1"
`
	d, err := service.Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, service.MethodPut, d.Method)
	assert.Equal(t, map[string]any{"name": "x", "tags": []any{"a", "b"}}, d.Body)
	assert.Equal(t, service.Header{"application/json"}, d.Headers["Accept"])
	assert.Equal(t, service.Header{"a", "b"}, d.Headers["X-Trace"])
	assert.Equal(t, "1", d.Cookies["sid"])
}

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	d, err := service.Decode(strings.NewReader(`{"method":"DELETE","url":"/items/1","headers":{"X-A":["1","2"]}}`))
	require.NoError(t, err)

	assert.Equal(t, service.MethodDelete, d.Method)
	assert.Equal(t, service.Header{"1", "2"}, d.Headers["X-A"])
}

func TestDecode_InvalidHeader(t *testing.T) {
	t.Parallel()

	_, err := service.Decode(strings.NewReader("headers:\n  X-A: {nested: true}\n"))
	require.Error(t, err)
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	src := `
- method: GET
  url: /a
- method: POST
  url: /b
---
method: DELETE
url: /c
`
	list, err := service.DecodeList(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "/a", list[0].URL)
	assert.Equal(t, service.MethodPost, list[1].Method)
	assert.Equal(t, "/c", list[2].URL)
}

func TestDecodeList_RejectsScalars(t *testing.T) {
	t.Parallel()

	_, err := service.DecodeList(strings.NewReader("just text\n"))
	require.ErrorIs(t, err, service.ErrUnexpectedDocument)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calls.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- {method: GET, url: /health}\n"), 0o600))

	list, err := service.Load(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/health", list[0].URL)

	_, err = service.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
