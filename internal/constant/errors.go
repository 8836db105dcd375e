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

package constant

import (
	"errors"
	"fmt"
)

var (
	// ErrRange is wrapped by errors for literals outside the range of their kind.
	ErrRange = errors.New("value out of range")

	// ErrSyntax is wrapped by errors for malformed literals.
	ErrSyntax = errors.New("invalid literal syntax")

	// ErrNotApplicable is wrapped by errors for coercions between incompatible kinds.
	ErrNotApplicable = errors.New("coercion not applicable")
)

// RangeError reports a literal that is not representable by its kind.
type RangeError struct {
	Kind    Kind
	Literal string
	Negated bool
}

func (e *RangeError) Error() string {
	sign := ""
	if e.Negated {
		sign = "-"
	}

	return fmt.Sprintf("literal %s%s overflows %s", sign, e.Literal, e.Kind)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// NotApplicableError reports an accessor or conversion that does not apply to the constant's kind.
//
// Accessors panic with this error, since requesting an incompatible value is a programming error.
type NotApplicableError struct {
	Kind Kind
	Want string
}

func (e *NotApplicableError) Error() string {
	return fmt.Sprintf("%s constant has no %s value", e.Kind, e.Want)
}

func (e *NotApplicableError) Unwrap() error { return ErrNotApplicable }
