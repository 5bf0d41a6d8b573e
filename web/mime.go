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
	"mime"
	"strings"
)

// MIMELookup maps a short type name or file extension to a MIME type.
type MIMELookup func(name string) string

// LookupMIME resolves name through the system MIME table. name may be given
// with or without the leading dot. Unknown names resolve to
// application/octet-stream.
func LookupMIME(name string) string {
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	if t := mime.TypeByExtension(name); t != "" {
		return t
	}

	switch strings.ToLower(name) {
	case ".json":
		return "application/json"
	case ".html", ".htm":
		return "text/html"
	case ".xml":
		return "application/xml"
	case ".txt", ".text":
		return "text/plain"
	case ".yaml", ".yml":
		return "application/x-yaml"
	default:
		return "application/octet-stream"
	}
}

// ResolveType returns t unchanged when it already is a MIME type, and the
// result of lookup otherwise. A nil lookup uses [LookupMIME].
func ResolveType(t string, lookup MIMELookup) string {
	if strings.Contains(t, "/") {
		return t
	}
	if lookup == nil {
		lookup = LookupMIME
	}

	return lookup(t)
}
