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

package native

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"rivaas.dev/httpmock/facade"
	"rivaas.dev/httpmock/web"
)

// ProblemContentType is the media type of [Problem] bodies.
const ProblemContentType = "application/problem+json; charset=utf-8"

// StatusError carries the HTTP status an error should be reported with.
type StatusError interface {
	error
	HTTPStatus() int
}

// Problem is an RFC 9457 problem detail.
type Problem struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON inlines the extensions. Reserved member names are never
// overwritten.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	} else {
		delete(m, "detail")
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	} else {
		delete(m, "instance")
	}

	return json.Marshal(m)
}

// NewProblem builds the problem detail for err. The status comes from a
// [StatusError] in the chain, then fallback.
func NewProblem(err error, fallback int, instance string) Problem {
	status := fallback
	var se StatusError
	if errors.As(err, &se) {
		status = se.HTTPStatus()
	}

	p := Problem{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Instance:   instance,
		Extensions: map[string]any{"error_id": "err-" + uuid.NewString()},
	}
	if err != nil {
		p.Detail = err.Error()
	}

	return p
}

// writeProblem sends err as a problem detail on res unless the headers are
// already out.
func writeProblem(res web.Response, status int, err error) {
	if res.HeadersSent() {
		return
	}

	instance := ""
	if req := res.Req(); !facade.IsNil(req) {
		instance = req.Path()
	}
	p := NewProblem(err, status, instance)
	body, merr := json.Marshal(p)
	if merr != nil {
		body = []byte(`{"type":"about:blank","status":500}`)
		p.Status = http.StatusInternalServerError
	}
	res.Status(p.Status).Set("Content-Type", ProblemContentType).Send(body)
}
