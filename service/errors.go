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

package service

import "errors"

var (
	// ErrInvalidMethod indicates that the method is not one of the supported verbs.
	ErrInvalidMethod = errors.New("invalid method")

	// ErrInvalidURL indicates that the URL is empty or cannot be parsed.
	ErrInvalidURL = errors.New("invalid url")

	// ErrNilDescriptor indicates that no descriptor was given.
	ErrNilDescriptor = errors.New("descriptor is nil")

	// ErrUnexpectedDocument indicates that a YAML document is neither a mapping nor a sequence.
	ErrUnexpectedDocument = errors.New("document must be a mapping or a sequence of mappings")
)
