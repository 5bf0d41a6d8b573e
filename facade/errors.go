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

package facade

import "errors"

var (
	// ErrOriginBound indicates that the facade is already bound to an origin.
	ErrOriginBound = errors.New("facade already bound to an origin")

	// ErrStateInUse indicates that the facade wrote local state before binding.
	ErrStateInUse = errors.New("facade has local state")

	// ErrNilOrigin indicates that a nil origin was passed to SetOrigin.
	ErrNilOrigin = errors.New("origin is nil")

	// ErrSynthetic indicates that an I/O operation was issued on a synthetic facade.
	ErrSynthetic = errors.New("operation not available on a synthetic facade")
)
