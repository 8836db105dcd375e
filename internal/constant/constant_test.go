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

package constant_test

import (
	exact "go/constant"
	"go/token"
	"go/types"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/flowguard/internal/constant"
)

func TestEqualityAndHash(t *testing.T) {
	t.Parallel()

	samples := []func() Constant{
		func() Constant { return MakeBool(true) },
		func() Constant { return MakeInt64(42) },
		func() Constant { return MakeInt32(42) },
		func() Constant { return MakeRune(42) },
		func() Constant { return MakeUint64(42) },
		func() Constant { return MakeFloat64(42) },
		func() Constant { return MakeFloat32(42) },
		func() Constant { return MakeString("42") },
		func() Constant { return MakeString("") },
	}

	for i, a := range samples {
		for j, b := range samples {
			x, y := a(), b()

			if i == j {
				assert.True(t, x.Equal(y), "%v (%s) should equal itself", x, x.Kind())
				assert.Equal(t, x.Hash(), y.Hash(), "hash of %v (%s)", x, x.Kind())
				assert.True(t, x.SameValue(y), "%v (%s) should have the same value as itself", x, x.Kind())

				continue
			}

			assert.False(t, x.Equal(y), "%v (%s) should not equal %v (%s)", x, x.Kind(), y, y.Kind())
			assert.False(t, x.SameValue(y), "%v (%s) should not have the same value as %v (%s)", x, x.Kind(), y, y.Kind())
		}
	}
}

func TestNotAConstant(t *testing.T) {
	t.Parallel()

	assert.False(t, NotAConstant.IsValid())
	assert.Equal(t, Invalid, NotAConstant.Kind())
	assert.False(t, NotAConstant.Equal(MakeString("")), "not a constant must differ from the empty string")
	assert.False(t, NotAConstant.SameValue(NotAConstant), "not a constant has no value")
}

func TestSameValueFloat(t *testing.T) {
	t.Parallel()

	pos, neg := MakeFloat64(0), MakeFloat64(math.Copysign(0, -1))
	assert.True(t, pos.SameValue(neg))
	assert.False(t, pos.Equal(neg))

	nan := MakeFloat64(math.NaN())
	assert.False(t, nan.SameValue(nan))
	assert.True(t, nan.Equal(nan))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{math.Pi, math.SmallestNonzeroFloat64, math.MaxFloat64, math.Inf(-1), math.Copysign(0, -1)} {
		got := MakeFloat64(f).Float64Value()
		assert.Equal(t, math.Float64bits(f), math.Float64bits(got), "float64 %v", f)
	}

	for _, f := range []float32{math.MaxFloat32, math.SmallestNonzeroFloat32, 0.1} {
		got := MakeFloat32(f).Float32Value()
		assert.Equal(t, math.Float32bits(f), math.Float32bits(got), "float32 %v", f)
	}

	for _, i := range []int64{math.MinInt64, -1, 0, math.MaxInt64} {
		assert.Equal(t, i, MakeInt64(i).Int64Value())
	}

	assert.Equal(t, uint64(math.MaxUint64), MakeUint64(math.MaxUint64).Uint64Value())
	assert.Equal(t, "a", MakeString("a").StringValue())
	assert.True(t, MakeBool(true).BoolValue())
}

func TestAccessorCoercion(t *testing.T) {
	t.Parallel()

	c := MakeInt64(300)
	assert.Equal(t, int8(44), c.Int8Value())
	assert.Equal(t, uint8(44), c.Uint8Value())
	assert.Equal(t, int16(300), c.Int16Value())
	assert.Equal(t, rune(300), c.RuneValue())
	assert.InDelta(t, 300.0, c.Float64Value(), 0)

	f := MakeFloat64(-1e20)
	assert.Equal(t, int32(math.MinInt32), f.Int32Value())
	assert.Equal(t, uint16(0), f.Uint16Value())
	assert.Equal(t, int64(0), MakeFloat64(math.NaN()).Int64Value())
	assert.Equal(t, int64(-2), MakeFloat32(-2.7).Int64Value())
}

func TestAccessorNotApplicable(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		call func()
	}{
		{"bool_as_int", func() { _ = MakeBool(true).Int64Value() }},
		{"string_as_float", func() { _ = MakeString("1").Float64Value() }},
		{"int_as_bool", func() { _ = MakeInt64(1).BoolValue() }},
		{"int_as_string", func() { _ = MakeInt64(1).StringValue() }},
		{"invalid_as_rune", func() { _ = NotAConstant.RuneValue() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				r := recover()
				err, ok := r.(error)
				require.True(t, ok, "expected panic with error, got %v", r)
				require.ErrorIs(t, err, ErrNotApplicable)
			}()

			tt.call()
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	got, err := MakeRune('a').Convert(Int32)
	require.NoError(t, err)
	assert.True(t, got.Equal(MakeInt32('a')))
	assert.False(t, MakeRune('a').Equal(MakeInt32('a')), "char and int must not collide before coercion")

	_, err = MakeBool(true).Convert(Int64)
	require.ErrorIs(t, err, ErrNotApplicable)

	got, err = MakeInt64(3).Convert(Float32)
	require.NoError(t, err)
	assert.True(t, got.Equal(MakeFloat32(3)))
}

func TestConditional(t *testing.T) {
	t.Parallel()

	x, y := MakeInt64(1), MakeString("y")

	assert.True(t, Conditional(MakeBool(true), x, y).Equal(x))
	assert.True(t, Conditional(MakeBool(false), x, y).Equal(y))
	assert.False(t, Conditional(MakeBool(true), NotAConstant, y).IsValid())
	assert.True(t, Conditional(NotAConstant, MakeBool(false), MakeBool(false)).Equal(MakeBool(false)))
	assert.False(t, Conditional(NotAConstant, MakeBool(true), MakeBool(false)).IsValid())
	assert.False(t, Conditional(NotAConstant, x, x).IsValid(), "only boolean arms fold without a condition")

	assert.True(t, IsFalse(And(NotAConstant, MakeBool(false))))
	assert.True(t, IsTrue(Or(NotAConstant, MakeBool(true))))
	assert.False(t, And(NotAConstant, MakeBool(true)).IsValid())
	assert.True(t, IsTrue(Not(MakeBool(false))))
	assert.False(t, Not(MakeInt64(0)).IsValid())
}

func TestFromValue(t *testing.T) {
	t.Parallel()

	runeType := types.Universe.Lookup("rune").Type()

	tests := [...]struct {
		name    string
		value   exact.Value
		typ     types.Type
		want    Constant
		wantErr bool
	}{
		{"int", exact.MakeInt64(7), types.Typ[types.Int], MakeInt64(7), false},
		{"untyped_int", exact.MakeInt64(7), types.Typ[types.UntypedInt], MakeInt64(7), false},
		{"rune", exact.MakeInt64('x'), runeType, MakeRune('x'), false},
		{"int32", exact.MakeInt64('x'), types.Typ[types.Int32], MakeInt32('x'), false},
		{"overflow", exact.MakeInt64(300), types.Typ[types.Int8], NotAConstant, true},
		{"uint", exact.MakeUint64(math.MaxUint64), types.Typ[types.Uint], MakeUint64(math.MaxUint64), false},
		{"float", exact.MakeFloat64(0.5), types.Typ[types.Float64], MakeFloat64(0.5), false},
		{"string", exact.MakeString("s"), types.Typ[types.String], MakeString("s"), false},
		{"bool", exact.MakeBool(true), types.Typ[types.UntypedBool], MakeBool(true), false},
		{"unknown", exact.MakeUnknown(), types.Typ[types.Int], NotAConstant, false},
		{"complex", exact.MakeImag(exact.MakeInt64(1)), types.Typ[types.Complex128], NotAConstant, false},
		{"literal", exact.MakeFromLiteral("1e3", token.FLOAT, 0), types.Typ[types.Float32], MakeFloat32(1000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromValue(tt.value, tt.typ)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrRange)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
		})
	}
}
