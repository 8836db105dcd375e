// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package astutil

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/analysis"
)

// InternalError is an inconsistency of the analysis at a source range.
// It indicates a bug in the analyzer logic rather than an issue in the user's code.
type InternalError struct {
	pos, end token.Pos
	err      error
}

// Internalf creates an *[InternalError] for rng. The format supports %w.
func Internalf(rng analysis.Range, format string, args ...any) *InternalError {
	return &InternalError{pos: rng.Pos(), end: rng.End(), err: fmt.Errorf(format, args...)}
}

// WrapInternal wraps err as an *[InternalError] for rng.
func WrapInternal(rng analysis.Range, err error) *InternalError {
	return &InternalError{pos: rng.Pos(), end: rng.End(), err: err}
}

func (e *InternalError) Error() string { return "internal error: " + e.err.Error() }

func (e *InternalError) Unwrap() error { return e.err }

// Pos returns the start of the range the error occurred in.
func (e *InternalError) Pos() token.Pos { return e.pos }

// End returns the end of the range the error occurred in.
func (e *InternalError) End() token.Pos { return e.end }
