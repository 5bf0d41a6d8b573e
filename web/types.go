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

import (
	"maps"
	"net/http"
	"time"
)

// CookieOptions configures a response cookie.
type CookieOptions struct {
	MaxAge   time.Duration
	Expires  time.Time
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	Signed   bool
	SameSite http.SameSite

	// Encode transforms the value before it is written. Nil writes the value as is.
	Encode func(string) string
}

// HTTPCookie builds the net/http cookie for name and value.
// A nil receiver yields a cookie with only the path set to "/".
func (o *CookieOptions) HTTPCookie(name, value string) *http.Cookie {
	c := &http.Cookie{Name: name, Value: value, Path: "/"}
	if o == nil {
		return c
	}

	if o.Encode != nil {
		c.Value = o.Encode(value)
	}
	if o.Path != "" {
		c.Path = o.Path
	}
	c.Domain = o.Domain
	c.Secure = o.Secure
	c.HttpOnly = o.HTTPOnly
	c.SameSite = o.SameSite
	if o.MaxAge != 0 {
		c.MaxAge = int(o.MaxAge / time.Second)
		if c.MaxAge == 0 {
			c.MaxAge = 1
		}
		if o.Expires.IsZero() {
			c.Expires = time.Now().Add(o.MaxAge)
		}
	}
	if !o.Expires.IsZero() {
		c.Expires = o.Expires
	}

	return c
}

// Cookie is a staged response cookie.
type Cookie struct {
	Value   string
	Options *CookieOptions
}

// Layer describes one registered handler entry of an application or route.
type Layer struct {
	Method string
	Path   string
}

// Route is the metadata of the route that matched a request.
type Route struct {
	Path    string
	Stack   []Layer
	Methods map[string]bool
}

// Clone returns a deep copy of r.
func (r *Route) Clone() *Route {
	if r == nil {
		return nil
	}

	return &Route{
		Path:    r.Path,
		Stack:   append([]Layer(nil), r.Stack...),
		Methods: maps.Clone(r.Methods),
	}
}

// Scope is the namespaced per-request scratch space.
type Scope struct {
	Context  map[string]any
	Base     map[string]any
	Isolated map[string]any
	Cache    map[string]any
}

// Locals holds per-request local values.
type Locals struct {
	Scope  *Scope
	Values map[string]any
}

// Ensure fills every missing part of l with an empty value and returns l.
func (l *Locals) Ensure() *Locals {
	if l.Values == nil {
		l.Values = make(map[string]any)
	}
	if l.Scope == nil {
		l.Scope = &Scope{}
	}
	if l.Scope.Context == nil {
		l.Scope.Context = make(map[string]any)
	}
	if l.Scope.Base == nil {
		l.Scope.Base = make(map[string]any)
	}
	if l.Scope.Isolated == nil {
		l.Scope.Isolated = make(map[string]any)
	}
	if l.Scope.Cache == nil {
		l.Scope.Cache = make(map[string]any)
	}

	return l
}

// ByteRange is an inclusive byte range.
type ByteRange struct {
	Start int64
	End   int64
}

// Ranges is the parsed result of a Range header.
type Ranges struct {
	Unit   string
	Ranges []ByteRange
}
