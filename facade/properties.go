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

import (
	"maps"
	"sync"

	"github.com/spf13/cast"

	"rivaas.dev/httpmock/web"
)

// Properties is an in-memory [web.Properties].
// The zero value is ready to use.
type Properties struct {
	mu     sync.RWMutex
	values map[string]any
}

var _ web.Properties = (*Properties)(nil)

// NewProperties returns a bag seeded with a shallow copy of values.
func NewProperties(values map[string]any) *Properties {
	return &Properties{values: maps.Clone(values)}
}

// Value returns the value stored under key.
func (p *Properties) Value(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]

	return v, ok
}

// SetValue stores value under key.
func (p *Properties) SetValue(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[key] = value
}

// DeleteValue removes key.
func (p *Properties) DeleteValue(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.values, key)
}

// Values returns a shallow copy of the bag.
func (p *Properties) Values() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]any, len(p.values))
	maps.Copy(out, p.values)

	return out
}

// Len returns the number of stored values.
func (p *Properties) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.values)
}

// String returns the value of key converted to a string, "" when absent.
func String(p web.Properties, key string) string {
	v, _ := p.Value(key)
	return cast.ToString(v)
}

// Int returns the value of key converted to an int, 0 when absent or invalid.
func Int(p web.Properties, key string) int {
	v, _ := p.Value(key)
	return cast.ToInt(v)
}

// Bool returns the value of key converted to a bool, false when absent or invalid.
func Bool(p web.Properties, key string) bool {
	v, _ := p.Value(key)
	return cast.ToBool(v)
}

// StringMap returns the value of key converted to a map, empty when absent.
func StringMap(p web.Properties, key string) map[string]any {
	v, _ := p.Value(key)
	return cast.ToStringMap(v)
}

// StringSlice returns the value of key converted to a string slice.
func StringSlice(p web.Properties, key string) []string {
	v, _ := p.Value(key)
	return cast.ToStringSlice(v)
}
