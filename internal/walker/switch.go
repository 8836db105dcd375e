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

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
)

func caseClauses(body *ast.BlockStmt) []*ast.CaseClause {
	clauses := make([]*ast.CaseClause, 0, len(body.List))
	for _, s := range body.List {
		if cc, ok := s.(*ast.CaseClause); ok {
			clauses = append(clauses, cc)
		}
	}

	return clauses
}

// bodySpan returns the range of the statements of a clause.
func bodySpan(body []ast.Stmt) span {
	return span{pos: body[0].Pos(), end: body[len(body)-1].End()}
}

// isNil reports whether expr is the predeclared nil.
func (f *flow) isNil(expr ast.Expr) bool {
	if f.Info.Types[expr].IsNil() {
		return true
	}

	id, ok := ast.Unparen(expr).(*ast.Ident)
	if !ok {
		return false
	}

	_, ok = f.Info.Uses[id].(*types.Nil)

	return ok
}

func (f *flow) switchStmt(s *ast.SwitchStmt, label string, st nullness.FlowState) nullness.FlowState {
	if s.Init != nil {
		st = f.stmt(s.Init, st)
	}

	var tag value
	if s.Tag != nil {
		tag = f.eval(s.Tag, st)
		st = tag.out
	}

	clauses := caseClauses(s.Body)
	entries := make([]nullness.FlowState, len(clauses))

	cur, def := st, -1 // state when no case matched so far
	for i, cc := range clauses {
		if cc.List == nil {
			def = i

			continue
		}

		match := cur.MarkUnreachable()
		for _, e := range cc.List {
			var m nullness.FlowState
			if s.Tag != nil {
				m, cur = f.caseValue(e, tag, cur)
			} else {
				c := f.eval(e, cur)
				m, cur = c.whenTrue, c.whenFalse
			}

			match = f.join(e, match, m)
		}

		entries[i] = match
	}

	if def >= 0 {
		entries[def] = cur
	}

	f.stack.Push(flowctx.Switch, label)

	saved := f.through
	f.through = nullness.FlowState{}
	end := f.clauses(clauses, entries, st)
	f.through = saved

	fr := f.stack.Pop()

	if def < 0 {
		end = f.join(s, end, cur)
	}

	return f.join(s, end, fr.Exit(flowctx.Break))
}

// caseValue returns the states where the case expression e matches tag and where it does not.
func (f *flow) caseValue(e ast.Expr, tag value, cur nullness.FlowState) (match, rest nullness.FlowState) {
	v := f.eval(e, cur)

	st := v.out
	if !f.isNil(e) {
		return st, st
	}

	switch n := tag.state(st); {
	case n == nullness.NonNil:
		f.report(st, report.RedundantNullCheck, e, f.refs.subject(tag.ref), "cannot be nil")

		return st.MarkUnreachable(), st

	case n == nullness.Nil:
		f.report(st, report.RedundantNullCheck, e, f.refs.subject(tag.ref), "can only be nil")

		return st, st.MarkUnreachable()

	case tag.ref.Valid():
		return narrow(st, tag.ref, nullness.Nil), narrow(st, tag.ref, nullness.NonNil)

	default:
		return st, st
	}
}

// clauses analyzes the bodies of switch clauses entered in the given states, including fallthrough.
func (f *flow) clauses(clauses []*ast.CaseClause, entries []nullness.FlowState, st nullness.FlowState) nullness.FlowState {
	end := st.MarkUnreachable()

	for i, cc := range clauses {
		in := f.join(cc, entries[i], f.through)
		f.through = nullness.FlowState{}

		if st.Reachable() && !in.Reachable() && len(cc.Body) > 0 {
			f.dead(bodySpan(cc.Body))
		}

		end = f.join(cc, end, f.stmts(cc.Body, in))
	}

	return end
}

func (f *flow) typeSwitchStmt(s *ast.TypeSwitchStmt, label string, st nullness.FlowState) nullness.FlowState {
	if s.Init != nil {
		st = f.stmt(s.Init, st)
	}

	var x ast.Expr

	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		x = a.Rhs[0]

	case *ast.ExprStmt:
		x = a.X
	}

	ta, ok := ast.Unparen(x).(*ast.TypeAssertExpr)
	if !ok {
		panic(astutil.Internalf(s.Assign, "type switch guard without type assertion"))
	}

	sel := f.eval(ta.X, st)
	st = sel.out

	clauses := caseClauses(s.Body)

	var hasNil, hasDefault bool

	for _, cc := range clauses {
		if cc.List == nil {
			hasDefault = true
		}

		for _, e := range cc.List {
			if f.isNil(e) {
				hasNil = true
			}
		}
	}

	if !hasNil && !hasDefault {
		switch sel.state(st) {
		case nullness.Nil:
			f.report(st, report.NullPointerAccess, s.Assign, f.refs.subject(sel.ref))

		case nullness.MaybeNil:
			f.report(st, report.PotentialNullPointerAccess, s.Assign, f.refs.subject(sel.ref))
		}
	}

	f.stack.Push(flowctx.Switch, label)

	end := st.MarkUnreachable()
	for _, cc := range clauses {
		in := f.typeClause(cc, sel, hasNil, st)
		end = f.join(cc, end, f.stmts(cc.Body, in))
	}

	fr := f.stack.Pop()

	if !hasDefault {
		rest := st
		if hasNil {
			rest = narrowValue(st, sel, nullness.NonNil)
		}

		end = f.join(s, end, rest)
	}

	return f.join(s, end, fr.Exit(flowctx.Break))
}

// typeClause returns the entry state of a type switch clause, with the clause variable bound.
func (f *flow) typeClause(cc *ast.CaseClause, sel value, hasNil bool, st nullness.FlowState) nullness.FlowState {
	var nils, typs int

	for _, e := range cc.List {
		if f.isNil(e) {
			nils++
		} else {
			typs++
		}
	}

	if nils > 0 && sel.state(st) == nullness.NonNil {
		for _, e := range cc.List {
			if f.isNil(e) {
				f.report(st, report.UnnecessaryNullPattern, e, f.refs.subject(sel.ref))
			}
		}
	}

	var in nullness.FlowState

	var bound nullness.State

	switch {
	case cc.List == nil: // default
		in = st
		if hasNil {
			in = narrowValue(st, sel, nullness.NonNil)
		}

		bound = sel.state(in)

	case typs == 0: // nil only
		in = narrowValue(st, sel, nullness.Nil)
		bound = nullness.Nil

	case nils > 0: // nil mixed with types
		in = st
		bound = sel.state(in)

	default:
		in = narrowValue(st, sel, nullness.NonNil)

		bound = nullness.NonNil
		if len(cc.List) == 1 && !isInterface(f.Info.TypeOf(cc.List[0])) {
			bound = nullness.Unknown
		}
	}

	if v, ok := f.Info.Implicits[cc].(*types.Var); ok {
		if r := f.refs.local(v); r.Valid() {
			in = f.store(in, r, bound)
		}
	}

	return in
}

func (f *flow) selectStmt(s *ast.SelectStmt, label string, st nullness.FlowState) nullness.FlowState {
	f.stack.Push(flowctx.Select, label)

	end := st.MarkUnreachable()
	for _, c := range s.Body.List {
		cc, ok := c.(*ast.CommClause)
		if !ok {
			continue
		}

		in := st
		if cc.Comm != nil {
			in = f.stmt(cc.Comm, in)
		}

		end = f.join(cc, end, f.stmts(cc.Body, in))
	}

	fr := f.stack.Pop()

	return f.join(s, end, fr.Exit(flowctx.Break))
}
