// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package assertion

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Effect is the flow narrowing of a recognized assertion call on the path where it returns.
type Effect uint8

//go:generate go tool stringer -type Effect -linecomment
const (
	// NoEffect marks calls that are known but do not narrow, e.g. assertions reporting through a result.
	NoEffect Effect = iota // none

	// NarrowTrue continues with the state in which the boolean argument is true.
	NarrowTrue // true

	// NarrowFalse continues with the state in which the boolean argument is false.
	NarrowFalse // false

	// NarrowNonNil continues with the argument known to be non-nil.
	NarrowNonNil // nonnil

	// NarrowNil continues with the argument known to be nil.
	NarrowNil // nil
)

// ParseEffect parses the name of an [Effect].
func ParseEffect(s string) (Effect, error) {
	for e := range numEffects {
		if strings.EqualFold(s, e.String()) {
			return e, nil
		}
	}

	return NoEffect, fmt.Errorf("%w: unknown effect %q", ErrInvalidShape, s)
}

const numEffects = NarrowNil + 1

// UnmarshalYAML implements [yaml.Unmarshaler].
func (e *Effect) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: effect must be a scalar", value.Line, ErrInvalidShape)
	}

	effect, err := ParseEffect(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*e = effect

	return nil
}
