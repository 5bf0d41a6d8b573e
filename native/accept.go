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
	"strconv"
	"strings"
)

// acceptSpec is one parsed entry of an Accept-style header.
type acceptSpec struct {
	value   string
	quality float64
}

// shortTypes maps the short names accepted by Accepts and Is to MIME types.
var shortTypes = map[string]string{
	"html":       "text/html",
	"json":       "application/json",
	"xml":        "application/xml",
	"text":       "text/plain",
	"txt":        "text/plain",
	"yaml":       "application/x-yaml",
	"form":       "application/x-www-form-urlencoded",
	"urlencoded": "application/x-www-form-urlencoded",
	"multipart":  "multipart/form-data",
	"png":        "image/png",
	"jpg":        "image/jpeg",
	"jpeg":       "image/jpeg",
	"css":        "text/css",
	"js":         "application/javascript",
	"pdf":        "application/pdf",
}

func parseAccept(header string) []acceptSpec {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	specs := make([]acceptSpec, 0, len(parts))
	for _, part := range parts {
		value, params, _ := strings.Cut(part, ";")
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		spec := acceptSpec{value: value, quality: 1}
		for param := range strings.SplitSeq(params, ";") {
			k, v, ok := strings.Cut(param, "=")
			if !ok || strings.TrimSpace(k) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.Trim(strings.TrimSpace(v), `"`), 64); err == nil && q >= 0 && q <= 1 {
				spec.quality = q
			}
		}
		specs = append(specs, spec)
	}

	return specs
}

// normalizeMediaType expands short names to full MIME types.
func normalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mime, ok := shortTypes[strings.TrimPrefix(mediaType, ".")]; ok {
		return mime
	}

	return mediaType
}

func splitMediaType(mediaType string) (string, string) {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if typ, sub, ok := strings.Cut(mediaType, "/"); ok {
		return typ, sub
	}

	return mediaType, "*"
}

// matchMediaType returns the quality of spec for offer and how specific the
// match was: 3 exact, 2 subtype wildcard, 1 full wildcard, 0 none.
func matchMediaType(offer string, spec acceptSpec) (float64, int) {
	offerType, offerSub := splitMediaType(offer)
	specType, specSub := splitMediaType(spec.value)

	switch {
	case specType == "*" && specSub == "*":
		return spec.quality, 1
	case specType == offerType && specSub == "*":
		return spec.quality, 2
	case specType == offerType && specSub == offerSub:
		return spec.quality, 3
	}

	return 0, 0
}

// negotiateType picks the best offer for an Accept header. An empty header
// accepts the first offer.
func negotiateType(header string, offers []string) string {
	if len(offers) == 0 {
		return ""
	}
	specs := parseAccept(header)
	if len(specs) == 0 {
		return offers[0]
	}

	best, bestQuality, bestSpecificity := "", 0.0, 0
	for _, offer := range offers {
		normalized := normalizeMediaType(offer)
		for _, spec := range specs {
			quality, specificity := matchMediaType(normalized, spec)
			if quality <= 0 {
				continue
			}
			if quality > bestQuality || (quality == bestQuality && specificity > bestSpecificity) {
				best, bestQuality, bestSpecificity = offer, quality, specificity
			}
		}
	}

	return best
}

// negotiate picks the best offer for Accept-Charset, Accept-Encoding or
// Accept-Language. Language tags also match on their primary subtag.
func negotiate(header string, offers []string) string {
	if len(offers) == 0 {
		return ""
	}
	specs := parseAccept(header)
	if len(specs) == 0 {
		return offers[0]
	}

	best, bestQuality := "", 0.0
	for _, offer := range offers {
		o := strings.ToLower(strings.TrimSpace(offer))
		for _, spec := range specs {
			v := strings.ToLower(spec.value)
			match := v == o || v == "*" ||
				strings.HasPrefix(v, o+"-") || strings.HasPrefix(o, v+"-")
			if match && spec.quality > bestQuality {
				best, bestQuality = offer, spec.quality
			}
		}
	}

	return best
}

// matchType returns the first of types matching contentType, or "".
func matchType(contentType string, types []string) string {
	if contentType == "" {
		return ""
	}
	gotType, gotSub := splitMediaType(contentType)
	for _, t := range types {
		wantType, wantSub := splitMediaType(normalizeMediaType(t))
		if (wantType == "*" || wantType == gotType) && (wantSub == "*" || wantSub == gotSub) {
			return t
		}
		if strings.HasPrefix(wantSub, "*+") && strings.HasSuffix(gotSub, wantSub[1:]) &&
			(wantType == "*" || wantType == gotType) {
			return t
		}
	}

	return ""
}
