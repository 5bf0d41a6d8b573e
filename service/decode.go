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

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// FromMap decodes a loosely typed map into a descriptor.
// Scalars are converted where possible; a single header value becomes a list.
func FromMap(m map[string]any) (*Descriptor, error) {
	var d Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &d,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	return &d, nil
}

// Decode reads a single descriptor from r. JSON input is accepted as YAML.
func Decode(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	return &d, nil
}

// DecodeList reads every descriptor from r. Each YAML document is either a
// single descriptor or a sequence of them.
func DecodeList(r io.Reader) ([]Descriptor, error) {
	dec := yaml.NewDecoder(r)

	var out []Descriptor
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode descriptors: %w", err)
		}

		doc := &node
		if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
			doc = doc.Content[0]
		}

		switch doc.Kind {
		case yaml.MappingNode:
			var d Descriptor
			if err = doc.Decode(&d); err != nil {
				return nil, fmt.Errorf("failed to decode descriptor: %w", err)
			}
			out = append(out, d)
		case yaml.SequenceNode:
			var list []Descriptor
			if err = doc.Decode(&list); err != nil {
				return nil, fmt.Errorf("failed to decode descriptors: %w", err)
			}
			out = append(out, list...)
		default:
			return nil, fmt.Errorf("line %d: %w", doc.Line, ErrUnexpectedDocument)
		}
	}
}

// Load reads the descriptors stored in the file at path.
func Load(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptors: %w", err)
	}
	defer f.Close()

	return DecodeList(f)
}
