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

import "go/types"

// Kind is the tag of a [Constant].
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// Invalid marks the absence of a value ("not a constant").
	Invalid Kind = iota // invalid

	Bool    // bool
	Int8    // int8
	Int16   // int16
	Int32   // int32
	Int64   // int64
	Uint8   // uint8
	Uint16  // uint16
	Uint32  // uint32
	Uint64  // uint64
	Rune    // rune
	Float32 // float32
	Float64 // float64
	String  // string
)

// IsInteger reports whether k is an integer kind, including [Rune].
func (k Kind) IsInteger() bool {
	return Int8 <= k && k <= Rune
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	return Uint8 <= k && k <= Uint64
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsNumeric reports whether k is an integer or floating-point kind.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// bitSize returns the width of numeric kinds.
func (k Kind) bitSize() int {
	switch k {
	case Int8, Uint8:
		return 8

	case Int16, Uint16:
		return 16

	case Int32, Uint32, Rune, Float32:
		return 32

	case Int64, Uint64, Float64:
		return 64

	default:
		return 0
	}
}

// KindOf maps a Go type to the [Kind] of constants of that type.
//
// Platform-sized integers (int, uint, uintptr) are treated as 64 bit wide, untyped
// constants use their default type. Types without constant representation map to [Invalid].
func KindOf(typ types.Type) Kind {
	if typ == nil {
		return Invalid
	}

	basic, ok := typ.Underlying().(*types.Basic)
	if !ok {
		return Invalid
	}

	switch basic.Kind() {
	case types.Bool, types.UntypedBool:
		return Bool

	case types.Int8:
		return Int8

	case types.Int16:
		return Int16

	case types.Int32:
		if basic.Name() == "rune" {
			return Rune
		}

		return Int32

	case types.UntypedRune:
		return Rune

	case types.Int, types.Int64, types.UntypedInt:
		return Int64

	case types.Uint8:
		return Uint8

	case types.Uint16:
		return Uint16

	case types.Uint32:
		return Uint32

	case types.Uint, types.Uint64, types.Uintptr:
		return Uint64

	case types.Float32:
		return Float32

	case types.Float64, types.UntypedFloat:
		return Float64

	case types.String, types.UntypedString:
		return String

	default:
		return Invalid
	}
}
