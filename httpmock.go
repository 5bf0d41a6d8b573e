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

package httpmock

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/httpmock/application"
	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/request"
	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/service"
	"rivaas.dev/httpmock/web"
)

// Option configures a [Mock].
type Option func(*Mock)

// WithLogger sets the logger passed to every facade built by the mock.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mock) { m.logger = logger }
}

// WithOrigins shares first-origin slots between mocks.
func WithOrigins(o *Origins) Option {
	return func(m *Mock) { m.origins = o }
}

// WithMIMELookup sets the lookup synthetic responses use to resolve short
// content type names.
func WithMIMELookup(lookup web.MIMELookup) Option {
	return func(m *Mock) { m.lookup = lookup }
}

// WithTracerProvider sets the provider of the bulk and call spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Mock) { m.tracerProvider = tp }
}

// WithMeterProvider sets the provider of the call and response counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Mock) { m.meterProvider = mp }
}

// Mock builds wired facade triples. It is safe for concurrent use; the
// calls it builds are not.
type Mock struct {
	logger         *slog.Logger
	origins        *Origins
	lookup         web.MIMELookup
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	instruments *instruments
}

// New creates a mock.
func New(opts ...Option) *Mock {
	m := &Mock{}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = facade.DiscardLogger()
	}
	if m.origins == nil {
		m.origins = NewOrigins()
	}
	if m.tracerProvider == nil {
		m.tracerProvider = otel.GetTracerProvider()
	}
	if m.meterProvider == nil {
		m.meterProvider = otel.GetMeterProvider()
	}
	m.instruments = newInstruments(m.tracerProvider, m.meterProvider, m.logger)

	return m
}

// Origins returns the first-origin slots of the mock.
func (m *Mock) Origins() *Origins { return m.origins }

// FakeCallOptions seeds a synthetic call. Every field is optional.
type FakeCallOptions struct {
	// Req seeds the ambient fields, headers and cookies of the request.
	Req web.Request

	// Res seeds the response locals.
	Res web.Response

	// App is the application of the call. When nil, the application of Req
	// or Res is cloned; without either the shared fake application is used.
	App web.Application

	// Next is the continuation of the call. It defaults to the one of Req.
	Next web.Next

	// Custom adds extra request properties. Names already in use are skipped.
	Custom map[string]any
}

// FakeCall builds a synthetic call from svc. The outcome of the response is
// delivered to resolver once.
func (m *Mock) FakeCall(svc *service.Descriptor, resolver response.Resolver, opts FakeCallOptions) *Call {
	req := request.Fake(svc, opts.Req, request.WithLogger(m.logger), request.WithCustom(opts.Custom))
	res := m.FakeResponse(resolver, opts.Res)

	next := opts.Next
	if next == nil {
		next = req.Next()
	}
	app := m.CloneApp(pickApp(opts.App, req.App(), res.App()))

	return m.wire(modeFake, req, res, app, next)
}

// CloneCall wraps a real request and response. The application is the clone
// of whichever of them knows one.
func (m *Mock) CloneCall(req web.Request, res web.Response) *Call {
	r := m.CloneRequest(req)
	w := m.CloneResponse(res)
	app := m.CloneApp(pickApp(r.App(), w.App()))

	return m.wire(modeClone, r, w, app, r.Next())
}

// FakeApp returns the shared synthetic application.
func (m *Mock) FakeApp() *application.Application { return application.Fake() }

// CloneApp wraps app in an application facade. A nil app yields the shared
// synthetic application.
func (m *Mock) CloneApp(app web.Application) web.Application {
	return application.Clone(app, application.WithLogger(m.logger))
}

// FakeRequest builds a synthetic request from svc, seeded by origin when it
// is not nil.
func (m *Mock) FakeRequest(svc *service.Descriptor, origin web.Request) *request.Request {
	return request.Fake(svc, origin, request.WithLogger(m.logger))
}

// CloneRequest wraps req in a request facade.
func (m *Mock) CloneRequest(req web.Request) web.Request {
	return request.Clone(req, request.WithLogger(m.logger))
}

// FakeResponse builds a synthetic response delivering its outcome to
// resolver. Finalized responses are counted.
func (m *Mock) FakeResponse(resolver response.Resolver, origin web.Response) *response.Response {
	return response.Fake(m.instruments.countResponses(resolver), origin, m.responseOptions()...)
}

// CloneResponse wraps res in a response facade.
func (m *Mock) CloneResponse(res web.Response) web.Response {
	return response.Clone(res, m.responseOptions()...)
}

func (m *Mock) responseOptions() []response.Option {
	opts := []response.Option{response.WithLogger(m.logger)}
	if m.lookup != nil {
		opts = append(opts, response.WithMIMELookup(m.lookup))
	}

	return opts
}

func pickApp(apps ...web.Application) web.Application {
	for _, app := range apps {
		if !facade.IsNil(app) {
			return app
		}
	}

	return nil
}
