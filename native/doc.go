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

// Package native implements the web interfaces on top of net/http.
//
// [App] is an express-style application: routes, middleware and mounted
// sub-applications run in registration order and paths are matched with
// chi. [Request] and [Response] wrap an *http.Request and an
// http.ResponseWriter.
//
//	app := native.NewApp()
//	app.Get("/items/:id", func(req web.Request, res web.Response, next web.Next) {
//		res.JSON(map[string]string{"id": req.Param("id", "")})
//	})
//	_ = app.Listen(":8080")
//
// Failures and unmatched requests are answered with RFC 9457 problem
// details.
package native
