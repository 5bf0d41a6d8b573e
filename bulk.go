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
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/httpmock/response"
	"rivaas.dev/httpmock/service"
	"rivaas.dev/httpmock/web"
)

// Result is the outcome of one descriptor of a bulk run.
type Result struct {
	Service  service.Descriptor
	Call     *Call
	Prepared *response.Prepared
	Err      error
}

// Bulk runs every descriptor of services through handler, one after the
// other, and returns one result per descriptor in the same order.
//
// Calls are derived from the captured first origins (see [Mock.ForBulk]);
// without a captured request they are fully synthetic. A nil handler
// dispatches each call through the Handle method of its application.
//
// An error passed to next is reported in the result. A handler that returns
// without finalizing the response and without an error yields
// [ErrNotFinalized]. Once ctx is done the remaining descriptors are not run
// and report the context error.
func (m *Mock) Bulk(ctx context.Context, services []service.Descriptor, handler web.HandlerFunc) []Result {
	ctx, span := m.instruments.tracer.Start(ctx, "httpmock.bulk",
		trace.WithAttributes(attribute.Int("httpmock.bulk.size", len(services))))
	defer span.End()

	results := make([]Result, len(services))
	failed := 0
	for i := range services {
		results[i] = m.runOne(ctx, services[i], handler)
		if results[i].Err != nil {
			failed++
		}
	}

	span.SetAttributes(attribute.Int("httpmock.bulk.failed", failed))
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d calls failed", failed, len(services)))
	}

	return results
}

func (m *Mock) runOne(ctx context.Context, svc service.Descriptor, handler web.HandlerFunc) Result {
	result := Result{Service: svc}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	_, span := m.instruments.tracer.Start(ctx, "httpmock.call", trace.WithAttributes(
		attribute.String("http.request.method", string(svc.Method)),
		attribute.String("url.full", svc.URL),
	))
	defer span.End()

	if err := svc.Validate(); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())

		return result
	}

	var nextErr error
	next := func(err error) { nextErr = err }

	call := m.forkCall(modeBulk, &svc, func(p *response.Prepared) { result.Prepared = p }, nil, next)
	result.Call = call
	span.SetAttributes(attribute.String("httpmock.call.id", call.ID))

	if handler != nil {
		handler(call.Req, call.Res, next)
	} else {
		call.App.Handle(call.Req, call.Res, next)
	}

	switch {
	case nextErr != nil && !web.IsSentinel(nextErr):
		result.Err = nextErr
	case result.Prepared == nil:
		result.Err = fmt.Errorf("%w: %s %s", ErrNotFinalized, svc.Method, svc.URL)
	}

	if result.Prepared != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", result.Prepared.Status))
	}
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}

	return result
}
