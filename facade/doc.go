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

// Package facade holds the machinery shared by the request, response and
// application facades.
//
// A facade is in exactly one [Mode] for its whole lifetime:
//
//   - [Synthetic]: state lives in the facade itself.
//   - [OriginBacked]: every operation is forwarded to a wrapped real object.
//
// [Base] implements the mode switch once for the parts every facade shares:
// the [web.Events] registry and the [web.Properties] overflow bag. Concrete
// facades embed it and implement their typed accessors as a simple branch on
// [Base.Origin].
//
// # Binding
//
// [Base.SetOrigin] binds a facade to its origin. It succeeds at most once,
// and only before the facade wrote any local state:
//
//	b := facade.NewBase[web.Request]("request", logger)
//	if err := b.SetOrigin(real); err != nil {
//	    // ErrOriginBound, ErrStateInUse or ErrNilOrigin
//	}
//
// # Typed properties
//
// [String], [Int], [Bool], [StringMap] and [StringSlice] read any
// [web.Properties] with lenient conversion.
package facade
