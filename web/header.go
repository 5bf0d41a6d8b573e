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
	"fmt"
	"strings"
)

// AppendVary adds the comma-separated fields to the Vary value existing,
// skipping names already present. A "*" on either side wins.
func AppendVary(existing, fields string) string {
	if strings.TrimSpace(existing) == "*" {
		return "*"
	}

	seen := make(map[string]bool)
	var out []string
	for _, f := range strings.Split(existing, ",") {
		if f = strings.TrimSpace(f); f != "" {
			seen[strings.ToLower(f)] = true
			out = append(out, f)
		}
	}
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f == "*" {
			return "*"
		}
		if !seen[strings.ToLower(f)] {
			seen[strings.ToLower(f)] = true
			out = append(out, f)
		}
	}

	return strings.Join(out, ", ")
}

// ContentDisposition returns an attachment disposition, naming filename when
// it is not empty.
func ContentDisposition(filename string) string {
	if filename == "" {
		return "attachment"
	}

	return fmt.Sprintf("attachment; filename=%q", filename)
}
