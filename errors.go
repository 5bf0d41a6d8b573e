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

import "errors"

var (
	// ErrNotFinalized indicates that a handler returned without finalizing
	// the response or reporting an error.
	ErrNotFinalized = errors.New("response was not finalized")

	// ErrInvalidDescriptor indicates that a bulk descriptor failed validation.
	ErrInvalidDescriptor = errors.New("invalid service descriptor")
)
