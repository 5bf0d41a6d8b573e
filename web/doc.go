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

// Package web defines the handler-facing contract shared by real and mock
// HTTP objects.
//
// Handler code is written against three interfaces: [Request], [Response]
// and [Application]. The native package implements them over net/http for
// real traffic; the request, response and application packages implement
// them as facades that either delegate to a wrapped implementation or keep
// purely in-memory state.
//
// # Handlers
//
// A [HandlerFunc] receives the request, the response and a [Next] callback:
//
//	func show(req web.Request, res web.Response, next web.Next) {
//	    id := req.Param("id", "")
//	    if id == "" {
//	        next(web.ErrNextRoute)
//	        return
//	    }
//	    res.Status(http.StatusOK).JSON(map[string]string{"id": id})
//	}
//
// [ErrNextRoute] and [ErrNextRouter] are pass-through sentinels. Facades
// forward them untouched; only a real application gives them meaning.
//
// # Events and properties
//
// Every object embeds [Events], a synchronous observer registry, and
// [Properties], an overflow bag for values that have no typed accessor.
package web
