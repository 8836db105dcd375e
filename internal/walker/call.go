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

package walker

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
)

// callOperands returns the operands of a call: the function value followed by the arguments.
//
// Conversions and builtins have no function value, type arguments of builtins are skipped.
func (f *flow) callOperands(call *ast.CallExpr) []ast.Expr {
	switch tv := f.Info.Types[call.Fun]; {
	case tv.IsType():
		return call.Args

	case tv.IsBuiltin():
		return f.valueArgs(call)

	default:
		ops := make([]ast.Expr, 0, 1+len(call.Args))
		ops = append(ops, call.Fun)

		return append(ops, call.Args...)
	}
}

// valueArgs returns the arguments of call that are not types.
func (f *flow) valueArgs(call *ast.CallExpr) []ast.Expr {
	args := make([]ast.Expr, 0, len(call.Args))
	for _, arg := range call.Args {
		if !f.Info.Types[arg].IsType() {
			args = append(args, arg)
		}
	}

	return args
}

func (f *flow) call(call *ast.CallExpr, fr *frame) value {
	switch tv := f.Info.Types[call.Fun]; {
	case tv.IsType():
		return f.conversion(call, fr)

	case tv.IsBuiltin():
		return f.builtin(call, fr)
	}

	fun, args := fr.vals[0], fr.vals[1:]
	st := fr.last()

	callee := f.tracker.Callee(call)
	if callee == nil {
		st = f.deref(st, fun, call.Fun)
	}

	if len(f.defers) > 0 {
		f.exit(call, flowctx.Panic, "", st)
	}

	if shape, ok := f.Assertions.Lookup(f.Info, call); ok {
		st = f.assert(st, shape, args[shape.Arg])
	} else {
		st = f.resetFields(st)
	}

	if f.tracker.CantReturn(call) {
		st = st.MarkUnreachable()
	}

	v := plain(st, nullness.Unknown)
	if callee == nil {
		return v
	}

	origin := callee.Origin()
	v.null = f.Annotations.Result(origin, 0)

	if n := origin.Signature().Results().Len(); n > 1 {
		v.tuple = make([]nullness.State, n)
		for i := range n {
			v.tuple[i] = f.Annotations.Result(origin, i)
		}
	}

	return v
}

// assert applies the narrowing of an assertion call returning normally.
func (f *flow) assert(st nullness.FlowState, shape assertion.Shape, arg value) nullness.FlowState {
	switch shape.Effect {
	case assertion.NarrowNonNil:
		return narrowValue(st, arg, nullness.NonNil)

	case assertion.NarrowNil:
		return narrowValue(st, arg, nullness.Nil)

	case assertion.NarrowTrue:
		return transfer(st, arg.out, arg.whenTrue)

	case assertion.NarrowFalse:
		return transfer(st, arg.out, arg.whenFalse)

	default:
		return st
	}
}

// transfer applies the facts target adds to from onto st, keeping later changes of st.
func transfer(st, from, target nullness.FlowState) nullness.FlowState {
	if !target.Reachable() {
		return st.MarkUnreachable()
	}

	for v, n := range target.All() {
		if n != from.Get(v) && st.Get(v) == from.Get(v) {
			st = st.Set(v, n)
		}
	}

	return st
}

// conversion evaluates T(x).
func (f *flow) conversion(call *ast.CallExpr, fr *frame) value {
	v := fr.vals[0]
	v.tuple = nil

	to, from := f.Info.TypeOf(call.Fun), f.Info.TypeOf(call.Args[0])

	switch {
	case isStruct(to):
		v.null, v.ref = nullness.NonNil, nullness.NoVar

	case isInterface(to) && !isInterface(from):
		// Boxing a nil pointer yields a non-nil interface.
		switch {
		case f.Info.Types[call.Args[0]].IsNil():
			v.null = nullness.Nil

		case isTypeParam(from):
			v.null = nullness.Unknown

		default:
			v.null = nullness.NonNil
		}

		v.ref = nullness.NoVar

	case nillable(to):

	default:
		v.null, v.ref = nullness.Unknown, nullness.NoVar
	}

	return v
}

func (f *flow) builtin(call *ast.CallExpr, fr *frame) value {
	st := fr.last()

	b, _ := typeutil.Callee(f.Info, call).(*types.Builtin)
	if b == nil {
		return plain(st, nullness.Unknown)
	}

	switch b.Name() {
	case "new", "make":
		return plain(st, nullness.NonNil)

	case "append":
		if len(call.Args) > 1 && !call.Ellipsis.IsValid() {
			return plain(st, nullness.NonNil)
		}

		return plain(st, fr.vals[0].state(st))

	case "close":
		return plain(f.deref(st, fr.vals[0], call.Args[0]), nullness.Unknown)

	case "panic":
		if len(f.defers) > 0 {
			f.exit(call, flowctx.Panic, "", st)
		}

		return plain(st.MarkUnreachable(), nullness.Unknown)

	default:
		return plain(st, nullness.Unknown)
	}
}
