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
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FromLiteral creates a constant of kind k from the Go source text of a literal.
//
// negated indicates that the literal is the direct operand of a unary minus. Only
// then is a decimal literal one larger than the maximum of a signed kind valid,
// forming the minimum value. Hexadecimal, octal and binary literals of signed
// kinds are read as unsigned bit patterns and wrap, as long as they fit the width.
//
// Literals out of range return a *[RangeError].
func FromLiteral(k Kind, raw string, negated bool) (Constant, error) {
	switch {
	case k == Bool:
		return boolLiteral(raw, negated)

	case k == String:
		return stringLiteral(raw, negated)

	case k.IsInteger():
		return integerLiteral(k, raw, negated)

	case k.IsFloat():
		return floatLiteral(k, raw, negated)

	default:
		return NotAConstant, fmt.Errorf("%w: no literals of kind %s", ErrSyntax, k)
	}
}

func boolLiteral(raw string, negated bool) (Constant, error) {
	if negated {
		return NotAConstant, fmt.Errorf("%w: negated boolean %s", ErrSyntax, raw)
	}

	switch raw {
	case "true":
		return MakeBool(true), nil

	case "false":
		return MakeBool(false), nil

	default:
		return NotAConstant, fmt.Errorf("%w: boolean %q", ErrSyntax, raw)
	}
}

func stringLiteral(raw string, negated bool) (Constant, error) {
	if negated {
		return NotAConstant, fmt.Errorf("%w: negated string %s", ErrSyntax, raw)
	}

	s, err := strconv.Unquote(raw)
	if err != nil || strings.HasPrefix(raw, "'") {
		return NotAConstant, fmt.Errorf("%w: string %s", ErrSyntax, raw)
	}

	return MakeString(s), nil
}

func integerLiteral(k Kind, raw string, negated bool) (Constant, error) {
	if strings.HasPrefix(raw, "'") {
		r, err := runeLiteral(raw)
		if err != nil {
			return NotAConstant, err
		}

		return checkedInteger(k, raw, uint64(r), true, negated)
	}

	mag, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return NotAConstant, &RangeError{Kind: k, Literal: raw, Negated: negated}
		}

		return NotAConstant, fmt.Errorf("%w: integer %s", ErrSyntax, raw)
	}

	return checkedInteger(k, raw, mag, isDecimal(raw), negated)
}

func checkedInteger(k Kind, raw string, mag uint64, decimal, negated bool) (Constant, error) {
	width := k.bitSize()
	unsignedMax := uint64(math.MaxUint64) >> (64 - width)

	if k.IsUnsigned() {
		if mag > unsignedMax || negated && mag != 0 {
			return NotAConstant, &RangeError{Kind: k, Literal: raw, Negated: negated}
		}

		return Constant{kind: k, bits: mag}, nil
	}

	signedMax := unsignedMax >> 1

	var bits uint64

	switch {
	case decimal && mag <= signedMax, decimal && negated && mag == signedMax+1:
		bits = mag

	case !decimal && mag <= unsignedMax:
		bits = wrap(k, mag) // wraps into the negative range

	default:
		return NotAConstant, &RangeError{Kind: k, Literal: raw, Negated: negated}
	}

	if negated {
		bits = -bits
	}

	return Constant{kind: k, bits: wrap(k, bits)}, nil
}

// isDecimal reports whether an integer literal uses decimal notation.
func isDecimal(raw string) bool {
	return len(raw) < 2 || raw[0] != '0'
}

func runeLiteral(raw string) (rune, error) {
	s, err := strconv.Unquote(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: rune %s", ErrSyntax, raw)
	}

	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("%w: rune %s", ErrSyntax, raw)
	}

	return r, nil
}

func floatLiteral(k Kind, raw string, negated bool) (Constant, error) {
	f, err := strconv.ParseFloat(raw, k.bitSize())
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Integer notation like "0x10" is no valid float syntax.
		mag, ierr := strconv.ParseUint(raw, 0, 64)
		if ierr != nil {
			return NotAConstant, fmt.Errorf("%w: float %s", ErrSyntax, raw)
		}

		f, err = float64(mag), nil
		if k == Float32 && f > math.MaxFloat32 {
			err = strconv.ErrRange
		}
	}

	if err != nil {
		return NotAConstant, &RangeError{Kind: k, Literal: raw, Negated: negated}
	}

	if negated {
		f = -f
	}

	if k == Float32 {
		return MakeFloat32(float32(f)), nil
	}

	return MakeFloat64(f), nil
}
