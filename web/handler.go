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

import "errors"

var (
	// ErrNextRoute asks the application to skip the remaining handlers of the
	// current route.
	ErrNextRoute = errors.New("route")

	// ErrNextRouter asks the application to leave the current router.
	ErrNextRouter = errors.New("router")

	// ErrRangeUnsatisfiable indicates that no requested byte range fits the resource.
	ErrRangeUnsatisfiable = errors.New("range not satisfiable")

	// ErrRangeMalformed indicates that the Range header could not be parsed.
	ErrRangeMalformed = errors.New("malformed range header")
)

// Next signals completion of a handler. A nil error continues the pipeline,
// a non-nil error aborts it. The sentinels [ErrNextRoute] and [ErrNextRouter]
// are forwarded without interpretation by facades.
type Next func(err error)

// HandlerFunc is the handler and middleware signature.
type HandlerFunc func(req Request, res Response, next Next)

// ParamHandler runs when a route matches a registered parameter name.
// value is the matched path segment.
type ParamHandler func(req Request, res Response, next Next, value, name string)

// RenderFunc renders the template at path with the given locals.
type RenderFunc func(path string, locals map[string]any) (string, error)

// RenderCallback receives the rendered output of a view.
type RenderCallback func(html string, err error)

// IsSentinel reports whether err is one of the pass-through sentinels.
func IsSentinel(err error) bool {
	return errors.Is(err, ErrNextRoute) || errors.Is(err, ErrNextRouter)
}
