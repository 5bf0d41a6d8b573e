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

// Package response provides a [web.Response] facade that captures the
// outcome of a response cycle instead of writing it.
//
// # Lifecycle
//
// A synthetic response starts open. Staged calls (Status, Set, Append,
// Cookie, ClearCookie, Type, Vary, ...) accumulate state and can be read back
// with Get, GetHeader and GetHeaders. The first terminating call (Send, JSON,
// JSONP, YAML, SendStatus, End) seals the response and passes a [Prepared]
// snapshot to the [Resolver]. Later terminating calls do nothing:
//
//	res := response.Fake(func(p *response.Prepared) {
//	    fmt.Println(p.Status, p.Data)
//	}, nil)
//	res.Status(http.StatusCreated).JSON(map[string]any{"ok": true})
//	res.End() // no-op, the resolver already ran
//
// After the resolver returns, the response emits [web.EventFinish] with the
// snapshot as its only argument.
//
// # Unsupported features
//
// Download, SendFile, Format, Location, Redirect and Render have no in-memory
// equivalent. They log an "unsupported.feature" record and do nothing else.
//
// # Replaying
//
// [Prepared.Replay] writes a snapshot to a real [net/http.ResponseWriter],
// and [Prepared.Body] renders the captured data by Content-Type.
package response
