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

package response

import (
	"fmt"
	"maps"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"rivaas.dev/httpmock/web"
)

// Resolver receives the captured outcome of a response cycle.
type Resolver func(p *Prepared)

// Prepared is the terminal state of a response cycle. Headers and cookie maps
// are copies; Data and Locals values are shared with the handler.
type Prepared struct {
	Status         int
	StatusMessage  string
	Headers        http.Header
	Cookies        map[string]web.Cookie
	ClearedCookies map[string]*web.CookieOptions
	Data           any
	Locals         map[string]any

	// Duration is the time between creation of the response and finalization.
	Duration time.Duration
}

// ContentType returns the media type of the Content-Type header without parameters.
func (p *Prepared) ContentType() string {
	ct := p.Headers.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.TrimSpace(strings.Split(ct, ";")[0])
	}

	return mt
}

// Body renders Data into bytes. Strings and byte slices are returned as is;
// other values are encoded as YAML when the Content-Type says so, and as JSON
// otherwise.
func (p *Prepared) Body() ([]byte, error) {
	switch v := p.Data.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}

	ct := p.ContentType()
	if strings.Contains(ct, "yaml") {
		out, err := yaml.Marshal(p.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml body: %w", err)
		}

		return out, nil
	}

	out, err := json.Marshal(p.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json body: %w", err)
	}

	return out, nil
}

// Replay writes the snapshot to w: headers, cookies, cleared cookies, status
// and body, in that order.
func (p *Prepared) Replay(w http.ResponseWriter) error {
	body, err := p.Body()
	if err != nil {
		return err
	}

	h := w.Header()
	for k, v := range p.Headers {
		h[k] = append([]string(nil), v...)
	}
	if h.Get("Content-Type") == "" {
		switch p.Data.(type) {
		case nil:
		case string:
			h.Set("Content-Type", "text/html; charset=utf-8")
		case []byte:
			h.Set("Content-Type", "application/octet-stream")
		default:
			h.Set("Content-Type", "application/json; charset=utf-8")
		}
	}

	for name, c := range p.Cookies {
		http.SetCookie(w, c.Options.HTTPCookie(name, c.Value))
	}
	for name, opts := range p.ClearedCookies {
		cookie := opts.HTTPCookie(name, "")
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}

	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		if _, err = w.Write(body); err != nil {
			return fmt.Errorf("failed to write body: %w", err)
		}
	}

	return nil
}

func cloneCookies(in map[string]web.Cookie) map[string]web.Cookie {
	out := make(map[string]web.Cookie, len(in))
	for k, c := range in {
		if c.Options != nil {
			opts := *c.Options
			c.Options = &opts
		}
		out[k] = c
	}

	return out
}

func cloneCleared(in map[string]*web.CookieOptions) map[string]*web.CookieOptions {
	out := make(map[string]*web.CookieOptions, len(in))
	for k, o := range in {
		if o != nil {
			opts := *o
			o = &opts
		}
		out[k] = o
	}

	return out
}

func cloneHeader(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}

	return out
}

func cloneLocals(m map[string]any) map[string]any {
	out := maps.Clone(m)
	if out == nil {
		out = map[string]any{}
	}

	return out
}
