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

package report

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// NullPointerAccess is a dereference of a value that is nil on every path.
	NullPointerAccess Kind = iota // npe

	// PotentialNullPointerAccess is a dereference of a value that is nil on some path.
	PotentialNullPointerAccess // pnpe

	// RedundantNullCheck is a nil comparison that always yields true.
	RedundantNullCheck // rnc

	// NullComparisonAlwaysFalse is a nil comparison that always yields false.
	NullComparisonAlwaysFalse // ncf

	// RedundantAssignment is an assignment of a variable to itself.
	RedundantAssignment // ras

	// DeadCode is the first statement of a region no control path reaches.
	DeadCode // dead

	// UnnecessaryNullPattern is a case nil in a type switch over a non-nil value.
	UnnecessaryNullPattern // unp

	// InvalidLiteral is a numeric literal out of the range of its type.
	InvalidLiteral // lit

	// InternalError is an inconsistency of the analysis itself.
	InternalError // int

	numKinds = iota
)

var kindNames = [numKinds]string{
	"NullPointerAccess",
	"PotentialNullPointerAccess",
	"RedundantNullCheck",
	"NullComparisonAlwaysFalse",
	"RedundantAssignment",
	"DeadCode",
	"UnnecessaryNullPattern",
	"InvalidLiteral",
	"InternalError",
}

var templates = [numKinds]string{
	"Nil pointer access: %s can only be nil at this location",
	"Potential nil pointer access: %s may be nil at this location",
	"Redundant nil check: %s %s at this location",
	"Nil comparison always yields false: %s %s at this location",
	"The assignment to %s has no effect",
	"Dead code",
	"Unnecessary case nil: %s cannot be nil at this location",
	"Invalid literal: %v",
	"Internal error: %v",
}

// Name returns the descriptive name of the kind.
func (k Kind) Name() string {
	if k >= numKinds {
		return k.String()
	}

	return kindNames[k]
}

// Severity returns the severity of diagnostics of this kind.
func (k Kind) Severity() Severity {
	switch k {
	case NullPointerAccess, InvalidLiteral, InternalError:
		return Error

	default:
		return Warning
	}
}

func (k Kind) message(args ...any) string {
	var msg []byte
	if k < numKinds {
		msg = fmt.Appendf(msg, templates[k], args...)
	}

	return string(fmt.Appendf(msg, " (fg:%s)", k))
}

// Severity is the severity of a diagnostic.
type Severity uint8

const (
	// Warning marks findings that do not necessarily fail at run time.
	Warning Severity = iota

	// Error marks findings that fail at run time or invalid input.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}

	return "warning"
}

// Kinds is a set of diagnostic kinds.
type Kinds uint16

// KindsOf returns the set of kinds.
func KindsOf(kinds ...Kind) Kinds {
	var ks Kinds
	for _, k := range kinds {
		ks |= k.flag()
	}

	return ks
}

func (k Kind) flag() Kinds { return 1 << k }

// ParseKinds parses a comma separated list of kind codes or names, e.g. "dead,ras".
func ParseKinds(s string) (Kinds, error) {
	var ks Kinds

	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		k, ok := parseKind(field)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownKind, field)
		}

		ks |= k.flag()
	}

	return ks, nil
}

func parseKind(s string) (Kind, bool) {
	for k := range Kind(numKinds) {
		if strings.EqualFold(s, k.String()) || strings.EqualFold(s, k.Name()) {
			return k, true
		}
	}

	return 0, false
}

// String returns the kind codes in the set, comma separated.
func (ks Kinds) String() string {
	var b strings.Builder

	for k := range Kind(numKinds) {
		if ks&k.flag() == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(',') // ignore error
		}

		b.WriteString(k.String()) // ignore error
	}

	return b.String()
}
