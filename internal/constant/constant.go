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
	"hash/fnv"
	"math"
	"strconv"
)

// Constant is an immutable, typed compile-time value.
//
// The zero value is the "not a constant" marker of kind [Invalid]. Constants are
// comparable: == agrees with [Constant.Equal], so they can be used as map keys.
type Constant struct {
	kind Kind
	bits uint64 // Two's complement integers, IEEE 754 bit patterns or 0/1 for booleans
	str  string
}

// NotAConstant is the absence-of-value marker.
var NotAConstant Constant

// MakeBool returns a boolean constant.
func MakeBool(b bool) Constant {
	var bits uint64
	if b {
		bits = 1
	}

	return Constant{kind: Bool, bits: bits}
}

// MakeInt returns an integer constant of kind k, wrapping v to the width of k.
// It panics when k is not an integer kind.
func MakeInt(k Kind, v int64) Constant {
	if !k.IsInteger() {
		panic(&NotApplicableError{Kind: k, Want: "integer"})
	}

	return Constant{kind: k, bits: wrap(k, uint64(v))}
}

// MakeInt64 returns an int64 constant.
func MakeInt64(v int64) Constant { return Constant{kind: Int64, bits: uint64(v)} }

// MakeInt32 returns an int32 constant.
func MakeInt32(v int32) Constant { return Constant{kind: Int32, bits: uint64(int64(v))} }

// MakeUint64 returns an uint64 constant.
func MakeUint64(v uint64) Constant { return Constant{kind: Uint64, bits: v} }

// MakeRune returns a rune constant.
func MakeRune(r rune) Constant { return Constant{kind: Rune, bits: uint64(int64(r))} }

// MakeFloat32 returns a float32 constant.
func MakeFloat32(f float32) Constant {
	return Constant{kind: Float32, bits: uint64(math.Float32bits(f))}
}

// MakeFloat64 returns a float64 constant.
func MakeFloat64(f float64) Constant {
	return Constant{kind: Float64, bits: math.Float64bits(f)}
}

// MakeString returns a string constant.
func MakeString(s string) Constant { return Constant{kind: String, str: s} }

// Kind returns the tag of the constant.
func (c Constant) Kind() Kind { return c.kind }

// IsValid reports whether c holds a value.
func (c Constant) IsValid() bool { return c.kind != Invalid }

// Equal reports whether c and o have the same kind and bit-identical values.
//
// Constants of different kinds are never equal, even when numerically equivalent.
func (c Constant) Equal(o Constant) bool { return c == o }

// SameValue reports whether c and o have the same kind and compare equal by value.
//
// Unlike [Constant.Equal], floating-point values compare numerically: +0 and -0
// have the same value, NaN has none.
func (c Constant) SameValue(o Constant) bool {
	if c.kind != o.kind {
		return false
	}

	switch c.kind {
	case Invalid:
		return false

	case Float32:
		return c.Float32Value() == o.Float32Value()

	case Float64:
		return c.Float64Value() == o.Float64Value()

	default:
		return c.bits == o.bits && c.str == o.str
	}
}

// Hash returns a hash code consistent with [Constant.Equal].
func (c Constant) Hash() uint64 {
	h := fnv.New64a()

	var buf [9]byte

	buf[0] = byte(c.kind)
	for i := range 8 {
		buf[i+1] = byte(c.bits >> (8 * i))
	}

	_, _ = h.Write(buf[:])       // never fails
	_, _ = h.Write([]byte(c.str)) // never fails

	return h.Sum64()
}

// BoolValue returns the value of a boolean constant.
func (c Constant) BoolValue() bool {
	if c.kind != Bool {
		panic(&NotApplicableError{Kind: c.kind, Want: Bool.String()})
	}

	return c.bits != 0
}

// StringValue returns the value of a string constant.
func (c Constant) StringValue() string {
	if c.kind != String {
		panic(&NotApplicableError{Kind: c.kind, Want: String.String()})
	}

	return c.str
}

// Int64Value returns a numeric constant converted to int64.
func (c Constant) Int64Value() int64 { return int64(c.integer(Int64)) }

// Int32Value returns a numeric constant converted to int32.
func (c Constant) Int32Value() int32 { return int32(c.integer(Int32)) }

// Int16Value returns a numeric constant converted to int16.
func (c Constant) Int16Value() int16 { return int16(c.integer(Int16)) }

// Int8Value returns a numeric constant converted to int8.
func (c Constant) Int8Value() int8 { return int8(c.integer(Int8)) }

// Uint64Value returns a numeric constant converted to uint64.
func (c Constant) Uint64Value() uint64 { return c.integer(Uint64) }

// Uint32Value returns a numeric constant converted to uint32.
func (c Constant) Uint32Value() uint32 { return uint32(c.integer(Uint32)) }

// Uint16Value returns a numeric constant converted to uint16.
func (c Constant) Uint16Value() uint16 { return uint16(c.integer(Uint16)) }

// Uint8Value returns a numeric constant converted to uint8.
func (c Constant) Uint8Value() uint8 { return uint8(c.integer(Uint8)) }

// RuneValue returns a numeric constant converted to rune.
func (c Constant) RuneValue() rune { return rune(c.integer(Rune)) }

// Float64Value returns a numeric constant converted to float64.
func (c Constant) Float64Value() float64 {
	switch {
	case c.kind == Float64:
		return math.Float64frombits(c.bits)

	case c.kind == Float32:
		return float64(math.Float32frombits(uint32(c.bits)))

	case c.kind.IsUnsigned():
		return float64(c.bits)

	case c.kind.IsInteger():
		return float64(int64(c.bits))

	default:
		panic(&NotApplicableError{Kind: c.kind, Want: Float64.String()})
	}
}

// Float32Value returns a numeric constant converted to float32.
func (c Constant) Float32Value() float32 {
	if c.kind == Float32 {
		return math.Float32frombits(uint32(c.bits))
	}

	if !c.kind.IsNumeric() {
		panic(&NotApplicableError{Kind: c.kind, Want: Float32.String()})
	}

	return float32(c.Float64Value())
}

// integer converts a numeric constant to the bit pattern of integer kind k.
func (c Constant) integer(k Kind) uint64 {
	switch {
	case c.kind.IsInteger():
		return wrap(k, c.bits)

	case c.kind.IsFloat():
		return wrap(k, truncate(c.Float64Value(), k))

	default:
		panic(&NotApplicableError{Kind: c.kind, Want: k.String()})
	}
}

// Convert returns c converted to kind k, following Go conversion rules between numeric kinds.
//
// Converting between numeric and non-numeric kinds is not applicable.
func (c Constant) Convert(k Kind) (Constant, error) {
	switch {
	case c.kind == k:
		return c, nil

	case c.kind.IsNumeric() && k.IsInteger():
		return Constant{kind: k, bits: c.integer(k)}, nil

	case c.kind.IsNumeric() && k == Float32:
		return MakeFloat32(c.Float32Value()), nil

	case c.kind.IsNumeric() && k == Float64:
		return MakeFloat64(c.Float64Value()), nil

	default:
		return NotAConstant, &NotApplicableError{Kind: c.kind, Want: k.String()}
	}
}

// String returns a Go source representation of the constant.
func (c Constant) String() string {
	switch {
	case c.kind == Invalid:
		return "<not a constant>"

	case c.kind == Bool:
		return strconv.FormatBool(c.bits != 0)

	case c.kind == Rune:
		return strconv.QuoteRune(c.RuneValue())

	case c.kind.IsUnsigned():
		return strconv.FormatUint(c.bits, 10)

	case c.kind.IsInteger():
		return strconv.FormatInt(int64(c.bits), 10)

	case c.kind == Float32:
		return strconv.FormatFloat(float64(c.Float32Value()), 'g', -1, 32)

	case c.kind == Float64:
		return strconv.FormatFloat(c.Float64Value(), 'g', -1, 64)

	default:
		return strconv.Quote(c.str)
	}
}

// wrap truncates the bit pattern v to the width of integer kind k,
// sign-extending signed kinds.
func wrap(k Kind, v uint64) uint64 {
	switch k {
	case Int8:
		return uint64(int64(int8(v)))

	case Int16:
		return uint64(int64(int16(v)))

	case Int32, Rune:
		return uint64(int64(int32(v)))

	case Uint8:
		return uint64(uint8(v))

	case Uint16:
		return uint64(uint16(v))

	case Uint32:
		return uint64(uint32(v))

	default:
		return v
	}
}

// truncate converts f toward zero, saturating at the bounds of integer kind k. NaN converts to 0.
func truncate(f float64, k Kind) uint64 {
	if math.IsNaN(f) {
		return 0
	}

	f = math.Trunc(f)
	width := k.bitSize()

	if k.IsUnsigned() {
		switch {
		case f <= 0:
			return 0

		case f >= math.Ldexp(1, width):
			return uint64(math.MaxUint64) >> (64 - width)

		default:
			return uint64(f)
		}
	}

	switch limit := math.Ldexp(1, width-1); {
	case f >= limit:
		return uint64(int64(math.MaxInt64) >> (64 - width))

	case f <= -limit:
		return uint64(int64(math.MinInt64) >> (64 - width))

	default:
		return uint64(int64(f))
	}
}
