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

// Package httpmock builds wired request, response and application facades
// for running web handlers outside of a live HTTP exchange.
//
// # Calls
//
// A [Call] is one request/response/application triple whose members refer
// to each other. [Mock.FakeCall] builds a fully synthetic call from a
// [service.Descriptor]; the outcome of the response is delivered to a
// [response.Resolver]:
//
//	m := httpmock.New()
//	call := m.FakeCall(&service.Descriptor{Method: service.MethodGet, URL: "/items/1"},
//	    func(p *response.Prepared) { fmt.Println(p.Status, p.Data) },
//	    httpmock.FakeCallOptions{})
//	handler(call.Req, call.Res, call.Next)
//
// [Mock.CloneCall] wraps a real request and response instead. Every
// operation on the clone is forwarded to the real objects.
//
// # First origins
//
// [Origins] remembers the first real request, response and application it
// sees. Install [Mock.Capture] as the first middleware of the real
// application, then derive synthetic calls that share its application with
// [Mock.ForBulk] or run many descriptors with [Mock.Bulk]:
//
//	app.Use(m.Capture())
//	results := m.Bulk(ctx, descriptors, nil)
//
// The captured request is kept behind a view that hides every per-call field
// (method, URL, body, headers, cookies, params and path), so derived calls
// never read data that belonged to the first exchange.
//
// # Observability
//
// Bulk runs record an "httpmock.bulk" span with one "httpmock.call" child per
// descriptor. The "httpmock.calls" and "httpmock.responses" counters count
// built calls and finalized synthetic responses. The global OpenTelemetry
// providers are used unless [WithTracerProvider] or [WithMeterProvider] is
// given.
package httpmock
