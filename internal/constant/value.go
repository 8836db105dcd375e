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
	exact "go/constant"
	"go/types"
)

// FromValue converts an exact value computed by the type checker into a [Constant] of the kind of typ.
//
// Unknown values, nil and types without constant representation yield [NotAConstant].
// Values not representable by the kind return a *[RangeError].
func FromValue(v exact.Value, typ types.Type) (Constant, error) {
	if v == nil || v.Kind() == exact.Unknown {
		return NotAConstant, nil
	}

	k := KindOf(typ)

	switch {
	case k == Bool && v.Kind() == exact.Bool:
		return MakeBool(exact.BoolVal(v)), nil

	case k == String && v.Kind() == exact.String:
		return MakeString(exact.StringVal(v)), nil

	case k.IsUnsigned():
		u, ok := exact.Uint64Val(exact.ToInt(v))
		if !ok || wrap(k, u) != u {
			return NotAConstant, &RangeError{Kind: k, Literal: v.ExactString()}
		}

		return Constant{kind: k, bits: u}, nil

	case k.IsInteger():
		i, ok := exact.Int64Val(exact.ToInt(v))
		if !ok || wrap(k, uint64(i)) != uint64(i) {
			return NotAConstant, &RangeError{Kind: k, Literal: v.ExactString()}
		}

		return Constant{kind: k, bits: uint64(i)}, nil

	case k == Float32:
		f, _ := exact.Float32Val(exact.ToFloat(v))

		return MakeFloat32(f), nil

	case k == Float64:
		f, _ := exact.Float64Val(exact.ToFloat(v))

		return MakeFloat64(f), nil

	default:
		return NotAConstant, nil
	}
}
