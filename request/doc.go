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

// Package request provides a [web.Request] facade.
//
// # Synthetic requests
//
// [Fake] builds a request from a [service.Descriptor]. The descriptor decides
// the method, URL and body. When a real request is supplied as well, its
// ambient fields (protocol, host, client addresses, locals values, custom
// properties) are copied and its headers and cookies win over the
// descriptor's for names both define:
//
//	req := request.Fake(&service.Descriptor{
//	    Method: service.MethodPost,
//	    URL:    "/items",
//	    Body:   map[string]any{"name": "x"},
//	}, nil)
//
// Synthetic requests have no byte stream: content negotiation returns "",
// [Request.Range] returns nil and reads report io.EOF.
//
// # Wrapping
//
// [Clone] wraps a real request. Every accessor then reads from and writes to
// the wrapped request. Cloning a facade returns it unchanged.
package request
