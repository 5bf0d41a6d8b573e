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
	"time"

	"github.com/google/uuid"

	"rivaas.dev/httpmock/web"
)

// Scope.Base keys written on every call.
const (
	CallIDKey    = "callId"
	StartedAtKey = "startedAt"
)

const (
	modeFake  = "fake"
	modeClone = "clone"
	modeBulk  = "bulk"
)

// Call is one wired request/response/application triple.
type Call struct {
	ID   string
	Req  web.Request
	Res  web.Response
	App  web.Application
	Next web.Next
}

func (m *Mock) wire(mode string, req web.Request, res web.Response, app web.Application, next web.Next) *Call {
	req.SetRelations(app, res, next)
	res.SetRelations(app, req)

	c := &Call{
		ID:   uuid.NewString(),
		Req:  req,
		Res:  res,
		App:  app,
		Next: next,
	}
	if l := req.Locals(); l != nil {
		l.Ensure()
		l.Scope.Base[CallIDKey] = c.ID
		l.Scope.Base[StartedAtKey] = time.Now()
	}
	m.instruments.countCall(context.Background(), mode)

	return c
}
