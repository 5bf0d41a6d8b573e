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

import "strings"

// Method is an HTTP verb accepted by a descriptor.
type Method string

// Supported methods.
const (
	MethodDelete  Method = "DELETE"
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodLink    Method = "LINK"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
	MethodPost    Method = "POST"
	MethodPurge   Method = "PURGE"
	MethodPut     Method = "PUT"
	MethodUnlink  Method = "UNLINK"
)

var methods = map[Method]struct{}{
	MethodDelete:  {},
	MethodGet:     {},
	MethodHead:    {},
	MethodLink:    {},
	MethodOptions: {},
	MethodPatch:   {},
	MethodPost:    {},
	MethodPurge:   {},
	MethodPut:     {},
	MethodUnlink:  {},
}

// ParseMethod returns the method named s, ignoring case.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := methods[m]

	return m, ok
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

// String returns the method name.
func (m Method) String() string { return string(m) }
