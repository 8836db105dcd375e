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

package nullness

import "strconv"

// State is the nullness of one tracked variable at a program point.
//
// A State is the set of possible origins of the current value: nil, non-nil or an
// unknown source. [Unassigned] is the empty set and the bottom of the lattice.
type State uint8

const (
	originNil State = 1 << iota
	originNonNil
	originUnknown
)

const (
	// Unassigned marks a variable not assigned on any path reaching this point.
	Unassigned State = 0

	// Nil is the state of a variable holding nil on every path.
	Nil = originNil

	// NonNil is the state of a variable holding a non-nil value on every path.
	NonNil = originNonNil

	// Unknown is the state of a variable without nullness information.
	Unknown = originUnknown

	// MaybeNonNil is the state of a variable that is non-nil on some paths and unknown on others.
	MaybeNonNil = originNonNil | originUnknown

	// MaybeNil is the state of a variable that is nil on some path and something else on another.
	MaybeNil = originNil | originNonNil | originUnknown
)

// Join returns the least upper bound of s and o.
func (s State) Join(o State) State {
	return normalize(s | o)
}

// normalize maps any origin set that contains nil and anything else to [MaybeNil].
func normalize(s State) State {
	if s&originNil != 0 && s != originNil {
		return MaybeNil
	}

	return s
}

// Assigned reports whether the variable has been assigned on some path.
func (s State) Assigned() bool { return s != Unassigned }

// IsNil reports whether the variable is nil on every path.
func (s State) IsNil() bool { return s == Nil }

// IsNonNil reports whether the variable is non-nil on every path.
func (s State) IsNonNil() bool { return s == NonNil }

// MayBeNil reports whether the variable is nil on some, but not every, path.
func (s State) MayBeNil() bool { return s == MaybeNil }

// Definite reports whether the state proves the variable nil or non-nil.
func (s State) Definite() bool { return s == Nil || s == NonNil }

func (s State) String() string {
	switch s {
	case Unassigned:
		return "unassigned"

	case Nil:
		return "nil"

	case NonNil:
		return "nonnil"

	case Unknown:
		return "unknown"

	case MaybeNonNil:
		return "maybe-nonnil"

	case MaybeNil:
		return "maybe-nil"

	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}
