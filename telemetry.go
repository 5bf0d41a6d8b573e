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
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/httpmock/response"
)

const instrumentationName = "rivaas.dev/httpmock"

// instruments holds the tracer and counters of a mock. A counter that could
// not be created is left nil and skipped.
type instruments struct {
	tracer    trace.Tracer
	calls     metric.Int64Counter
	responses metric.Int64Counter
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider, logger *slog.Logger) *instruments {
	meter := mp.Meter(instrumentationName)
	i := &instruments{tracer: tp.Tracer(instrumentationName)}

	var err error
	i.calls, err = meter.Int64Counter(
		"httpmock.calls",
		metric.WithDescription("Number of facade calls built"),
	)
	if err != nil {
		logger.Warn("failed to create calls counter", "error", err)
		i.calls = nil
	}

	i.responses, err = meter.Int64Counter(
		"httpmock.responses",
		metric.WithDescription("Number of synthetic responses finalized"),
	)
	if err != nil {
		logger.Warn("failed to create responses counter", "error", err)
		i.responses = nil
	}

	return i
}

func (i *instruments) countCall(ctx context.Context, mode string) {
	if i.calls == nil {
		return
	}
	i.calls.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// countResponses wraps resolver so every finalized response is counted by
// status code. A nil resolver stays a no-op apart from counting.
func (i *instruments) countResponses(resolver response.Resolver) response.Resolver {
	return func(p *response.Prepared) {
		if i.responses != nil {
			i.responses.Add(context.Background(), 1,
				metric.WithAttributes(attribute.Int("status", p.Status)))
		}
		if resolver != nil {
			resolver(p)
		}
	}
}
