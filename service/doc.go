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

// Package service describes synthetic calls.
//
// A [Descriptor] carries the method, URL, body, headers and cookies of one
// logical request. Descriptors are plain values: build them in code, decode
// them from loosely typed maps with [FromMap], or load YAML/JSON fixtures
// with [Decode], [DecodeList] and [Load]:
//
//	- method: POST
//	  url: /items
//	  body: {name: x}
//	  headers:
//	    Accept: application/json
//	    X-Trace: [a, b]
//
// [Normalize] never fails: an absent or malformed descriptor becomes
// [Default], a GET of "/" with empty maps.
package service
