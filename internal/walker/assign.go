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
	"go/token"
	"go/types"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
)

func (f *flow) assign(s *ast.AssignStmt, st nullness.FlowState) nullness.FlowState {
	if s.Tok != token.ASSIGN && s.Tok != token.DEFINE { // x op= y
		_, st = f.target(s.Lhs[0], st)

		return f.eval(s.Rhs[0], st).out
	}

	states, vals, st := f.values(s.Rhs, len(s.Lhs), st)

	for i, lhs := range s.Lhs {
		var r nullness.Var
		r, st = f.target(lhs, st)

		if s.Tok == token.ASSIGN && vals != nil && f.selfAssignment(lhs, s.Rhs[i], r, vals[i]) {
			f.report(st, report.RedundantAssignment, s, types.ExprString(lhs))
		}

		st = f.killGuard(lhs, st)

		if r.Valid() {
			st = f.store(st, r, states[i])
		}
	}

	if i, ok := f.guardAt[s]; ok {
		st = st.Set(f.guards[i].slot, nullness.NonNil)
	}

	return st
}

// values evaluates the right-hand side of an assignment to n variables.
//
// The nullness of every assigned value is taken before any assignment happens.
// vals is nil for a single multi-valued expression.
func (f *flow) values(exprs []ast.Expr, n int, st nullness.FlowState) ([]nullness.State, []value, nullness.FlowState) {
	states := make([]nullness.State, n)

	if len(exprs) == n {
		vals, st := f.evalList(exprs, st)
		for i, v := range vals {
			states[i] = v.state(st)
		}

		return states, vals, st
	}

	v := f.evalExpr(exprs[0], st, n == 2)
	st = v.out

	for i := range states {
		switch {
		case i < len(v.tuple):
			states[i] = v.tuple[i]

		case i == 0:
			states[i] = v.state(st)

		default:
			states[i] = nullness.Unknown
		}
	}

	return states, nil, st
}

// target evaluates the operands of an assignment target and returns the tracked reference it denotes.
func (f *flow) target(lhs ast.Expr, st nullness.FlowState) (nullness.Var, nullness.FlowState) {
	switch e := ast.Unparen(lhs).(type) {
	case *ast.Ident:
		v, _ := f.Info.ObjectOf(e).(*types.Var)

		return f.refs.local(v), st

	case *ast.SelectorExpr:
		x := f.eval(e.X, st)

		st = x.out
		if isPointer(f.Info.TypeOf(e.X)) {
			st = f.deref(st, x, e.X)
		}

		field, ok := selectedField(f.Info, e)
		if !ok {
			return nullness.NoVar, st
		}

		return f.refs.field(x.ref, field), st

	case *ast.IndexExpr:
		vals, st := f.evalList([]ast.Expr{e.X, e.Index}, st)
		if xt := f.Info.TypeOf(e.X); isMap(xt) || isPointerToArray(xt) {
			st = f.deref(st, vals[0], e.X)
		}

		return nullness.NoVar, st

	case *ast.StarExpr:
		x := f.eval(e.X, st)

		return nullness.NoVar, f.deref(x.out, x, e.X)

	default:
		return nullness.NoVar, f.eval(lhs, st).out
	}
}

// selfAssignment reports whether lhs = rhs assigns a variable or tracked field to itself.
func (f *flow) selfAssignment(lhs, rhs ast.Expr, r nullness.Var, v value) bool {
	if r.Valid() && r == v.ref {
		return true
	}

	l, ok := ast.Unparen(lhs).(*ast.Ident)
	if !ok {
		return false
	}

	rid, ok := ast.Unparen(rhs).(*ast.Ident)
	if !ok {
		return false
	}

	obj := f.Info.ObjectOf(l)

	return obj != nil && obj == f.Info.ObjectOf(rid)
}

// commaOKGuard returns the guard established by v, ok = x.(T).
func (f *flow) commaOKGuard(s *ast.AssignStmt) (guard, bool) {
	if len(s.Lhs) != 2 || len(s.Rhs) != 1 {
		return guard{}, false
	}

	ta, ok := ast.Unparen(s.Rhs[0]).(*ast.TypeAssertExpr)
	if !ok || ta.Type == nil {
		return guard{}, false
	}

	id, ok := ast.Unparen(s.Lhs[1]).(*ast.Ident)
	if !ok {
		return guard{}, false
	}

	okVar, ok := f.Info.ObjectOf(id).(*types.Var)
	if !ok {
		return guard{}, false
	}

	g := guard{ok: okVar, slot: nullness.NoVar, subject: f.refs.lookup(f.Info, ta.X), bound: nullness.NoVar}
	if isInterface(f.Info.TypeOf(ta.Type)) {
		g.bound = f.refs.lookup(f.Info, s.Lhs[0])
	}

	return g, g.subject.Valid() || g.bound.Valid()
}

// decl analyzes a local variable declaration.
func (f *flow) decl(s *ast.DeclStmt, st nullness.FlowState) nullness.FlowState {
	gd, ok := s.Decl.(*ast.GenDecl)
	if !ok || gd.Tok != token.VAR {
		return st
	}

	for id, vs := range astutil.DeclaredIdents(gd) {
		st = f.killGuard(id, st)

		if len(vs.Values) > 0 {
			continue
		}

		if r := f.defined(id); r.Valid() {
			st = f.storeZero(st, r)
		}
	}

	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok || len(vs.Values) == 0 {
			continue
		}

		var states []nullness.State
		states, _, st = f.values(vs.Values, len(vs.Names), st)

		for i, id := range vs.Names {
			if r := f.defined(id); r.Valid() {
				st = f.store(st, r, states[i])
			}
		}
	}

	return st
}

// defined returns the reference of the local variable declared by id.
func (f *flow) defined(id *ast.Ident) nullness.Var {
	v, _ := f.Info.Defs[id].(*types.Var)

	return f.refs.local(v)
}
