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

// Package application provides a [web.Application] facade.
//
// [Fake] returns one process-wide synthetic application, created on first
// use. It holds locals and settings, so handlers reading app.Locals() or
// app.Setting(name) work, but routing and lifecycle calls only log a
// "should not be called" warning. [ResetFake] drops the shared instance
// between tests.
//
// [Clone] wraps a real application so every call reaches it.
package application
