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

import (
	"io"
	"net"
	"net/http"
	"time"
)

// Response is the outgoing response as seen by handler code.
//
// Chainable methods return the receiver so calls can be composed:
//
//	res.Status(http.StatusCreated).JSON(item)
type Response interface {
	Carrier
	io.Writer

	// IsFake reports whether the response is captured instead of written.
	IsFake() bool

	App() Application
	Req() Request

	// SetRelations wires the application and request.
	SetRelations(app Application, req Request)

	Locals() map[string]any
	HeadersSent() bool
	StatusCode() int
	StatusMessage() string
	SetStatusMessage(msg string) Response
	Charset() string
	SetCharset(charset string) Response

	// Terminating calls.
	Send(body any) Response
	JSON(body any) Response
	JSONP(body any) Response
	YAML(body any) Response
	SendStatus(code int) Response
	End() Response

	// Staged mutations.
	Status(code int) Response
	Set(field string, values ...string) Response
	SetFields(fields map[string]string) Response
	Header(field string, values ...string) Response
	Append(field string, values ...string) Response
	Cookie(name, value string, opts *CookieOptions) Response
	CookieMap(values map[string]string, opts *CookieOptions) Response
	ClearCookie(name string, opts *CookieOptions) Response
	Type(t string) Response
	ContentType(t string) Response
	Vary(field string) Response
	Links(links map[string]string) Response
	Attachment(filename string) Response

	// Header reads.
	Get(field string) string
	GetHeader(name string) []string
	GetHeaderNames() []string
	GetHeaders() http.Header
	HasHeader(name string) bool
	SetHeader(name string, values ...string) Response
	AppendHeader(name string, values ...string) Response
	SetHeaders(h http.Header) Response
	RemoveHeader(name string)

	Download(path, filename string, fn func(error))
	SendFile(path string, fn func(error))
	Format(handlers map[string]func()) Response
	Location(url string) Response
	Redirect(status int, url string)
	Render(view string, locals map[string]any, fn RenderCallback)

	Writev(chunks [][]byte) (int, error)
	Cork()
	Uncork()
	Destroy(err error) Response
	SetTimeout(d time.Duration, fn func()) Response
	AddTrailers(h http.Header)
	Socket() net.Conn
	WriteHead(code int, msg string, h http.Header) Response
	WriteContinue()
	WriteProcessing()
	WriteEarlyHints(h http.Header, fn func())
	FlushHeaders()
	SetDefaultEncoding(encoding string) Response
}
