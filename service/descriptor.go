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

package service

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header holds one or more values of a request header.
// In YAML it may be written as a scalar or as a list.
type Header []string

// UnmarshalYAML implements [yaml.Unmarshaler].
func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*h = Header{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*h = values

		return nil
	default:
		return fmt.Errorf("header: line %d: expected a scalar or a list", node.Line)
	}
}

// Descriptor is the input of a synthetic call.
type Descriptor struct {
	Method        Method            `yaml:"method" mapstructure:"method"`
	URL           string            `yaml:"url" mapstructure:"url"`
	Body          any               `yaml:"body,omitempty" mapstructure:"body"`
	Headers       map[string]Header `yaml:"headers,omitempty" mapstructure:"headers"`
	Cookies       map[string]string `yaml:"cookies,omitempty" mapstructure:"cookies"`
	SignedCookies map[string]string `yaml:"signedCookies,omitempty" mapstructure:"signedCookies"`
}

// Default returns the descriptor used in place of an absent or malformed one.
func Default() Descriptor {
	return Descriptor{
		Method:        MethodGet,
		URL:           "/",
		Headers:       map[string]Header{},
		Cookies:       map[string]string{},
		SignedCookies: map[string]string{},
	}
}

// Validate reports why d cannot be used as is.
func (d *Descriptor) Validate() error {
	if d == nil {
		return ErrNilDescriptor
	}
	if _, ok := ParseMethod(string(d.Method)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, d.Method)
	}
	if d.URL == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(d.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if !u.IsAbs() && !strings.HasPrefix(d.URL, "/") {
		return fmt.Errorf("%w: %q is neither absolute nor rooted", ErrInvalidURL, d.URL)
	}

	return nil
}

// Valid reports whether d is well formed.
func (d *Descriptor) Valid() bool { return d.Validate() == nil }

// Normalize returns a usable copy of d. An absent or malformed descriptor
// yields [Default]; otherwise the method is upper-cased and nil maps are
// replaced with empty ones. The maps of the result are copies.
func Normalize(d *Descriptor) Descriptor {
	if !d.Valid() {
		return Default()
	}

	m, _ := ParseMethod(string(d.Method))
	out := Descriptor{
		Method:        m,
		URL:           d.URL,
		Body:          d.Body,
		Headers:       make(map[string]Header, len(d.Headers)),
		Cookies:       make(map[string]string, len(d.Cookies)),
		SignedCookies: make(map[string]string, len(d.SignedCookies)),
	}
	for k, v := range d.Headers {
		out.Headers[k] = append(Header(nil), v...)
	}
	maps.Copy(out.Cookies, d.Cookies)
	maps.Copy(out.SignedCookies, d.SignedCookies)

	return out
}

// HTTPHeader returns the headers of d with canonical names.
func (d *Descriptor) HTTPHeader() http.Header {
	h := make(http.Header, len(d.Headers))
	for k, v := range d.Headers {
		key := http.CanonicalHeaderKey(k)
		h[key] = append(h[key], v...)
	}

	return h
}
