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
	"cmp"
	"slices"
	"strconv"
	"strings"

	"rivaas.dev/httpmock/web"
)

// parseRange parses a Range header (RFC 7233) against a resource of size
// bytes. Ranges starting past the end are dropped; when none remain the
// result is [web.ErrRangeUnsatisfiable]. With combine set, overlapping and
// adjacent ranges are merged.
func parseRange(header string, size int64, combine bool) (*web.Ranges, error) {
	unit, spec, ok := strings.Cut(header, "=")
	unit = strings.TrimSpace(unit)
	if !ok || unit == "" {
		return nil, web.ErrRangeMalformed
	}

	out := &web.Ranges{Unit: unit}
	for part := range strings.SplitSeq(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		startStr, endStr, ok := strings.Cut(part, "-")
		if !ok {
			return nil, web.ErrRangeMalformed
		}

		var r web.ByteRange
		switch {
		case startStr == "":
			// Suffix range: the last n bytes.
			n, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil || n <= 0 {
				return nil, web.ErrRangeMalformed
			}
			r = web.ByteRange{Start: max(size-n, 0), End: size - 1}
		default:
			start, err := strconv.ParseInt(startStr, 10, 64)
			if err != nil || start < 0 {
				return nil, web.ErrRangeMalformed
			}
			end := size - 1
			if endStr != "" {
				if end, err = strconv.ParseInt(endStr, 10, 64); err != nil || end < start {
					return nil, web.ErrRangeMalformed
				}
				end = min(end, size-1)
			}
			r = web.ByteRange{Start: start, End: end}
		}

		if r.Start < size {
			out.Ranges = append(out.Ranges, r)
		}
	}

	if len(out.Ranges) == 0 {
		return nil, web.ErrRangeUnsatisfiable
	}
	if combine {
		out.Ranges = combineRanges(out.Ranges)
	}

	return out, nil
}

func combineRanges(in []web.ByteRange) []web.ByteRange {
	sorted := slices.Clone(in)
	slices.SortFunc(sorted, func(a, b web.ByteRange) int {
		return cmp.Compare(a.Start, b.Start)
	})

	out := []web.ByteRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Start <= last.End+1 {
			last.End = max(last.End, r.End)
			continue
		}
		out = append(out, r)
	}

	return out
}
