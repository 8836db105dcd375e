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
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
)

func (f *flow) block(b *ast.BlockStmt, st nullness.FlowState) nullness.FlowState {
	if b == nil {
		return st
	}

	return f.stmts(b.List, st)
}

// stmts analyzes a statement list.
//
// Statements no control path reaches are reported once per region, up to the next label.
func (f *flow) stmts(list []ast.Stmt, st nullness.FlowState) nullness.FlowState {
	live := st.Reachable()

	for i, s := range list {
		if l, ok := s.(*ast.LabeledStmt); ok {
			st = f.labelEntry(l, st)
			if st.Reachable() {
				live = true
			}
		}

		if live && !st.Reachable() && !empty(s) {
			f.dead(span{pos: s.Pos(), end: list[regionEnd(list, i)].End()})
			live = false
		}

		st = f.stmt(s, st)
	}

	return st
}

func empty(s ast.Stmt) bool {
	_, ok := s.(*ast.EmptyStmt)

	return ok
}

// regionEnd returns the index of the last statement starting at i before the next label.
func regionEnd(list []ast.Stmt, i int) int {
	for j := i + 1; j < len(list); j++ {
		if _, ok := list[j].(*ast.LabeledStmt); ok {
			return j - 1
		}
	}

	return len(list) - 1
}

func (f *flow) stmt(s ast.Stmt, st nullness.FlowState) nullness.FlowState {
	switch s := s.(type) {
	// keep-sorted start newline_separated=yes
	case *ast.AssignStmt:
		return f.assign(s, st)

	case *ast.BlockStmt:
		return f.block(s, st)

	case *ast.BranchStmt:
		return f.branch(s, st)

	case *ast.DeclStmt:
		return f.decl(s, st)

	case *ast.DeferStmt:
		return f.deferStmt(s, st)

	case *ast.EmptyStmt:
		return st

	case *ast.ExprStmt:
		return f.eval(s.X, st).out

	case *ast.ForStmt:
		return f.forStmt(s, "", st)

	case *ast.GoStmt:
		return f.goStmt(s, st)

	case *ast.IfStmt:
		return f.ifStmt(s, st)

	case *ast.IncDecStmt:
		_, st = f.target(s.X, st)

		return st

	case *ast.LabeledStmt:
		return f.labeled(s, st)

	case *ast.RangeStmt:
		return f.rangeStmt(s, "", st)

	case *ast.ReturnStmt:
		return f.returnStmt(s, st)

	case *ast.SelectStmt:
		return f.selectStmt(s, "", st)

	case *ast.SendStmt:
		_, st = f.evalList([]ast.Expr{s.Chan, s.Value}, st)

		return st

	case *ast.SwitchStmt:
		return f.switchStmt(s, "", st)

	case *ast.TypeSwitchStmt:
		return f.typeSwitchStmt(s, "", st)
		// keep-sorted end

	default:
		panic(astutil.Internalf(s, "unexpected statement %T", s))
	}
}

// evalList evaluates exprs from left to right.
func (f *flow) evalList(exprs []ast.Expr, st nullness.FlowState) ([]value, nullness.FlowState) {
	vals := make([]value, len(exprs))
	for i, e := range exprs {
		vals[i] = f.eval(e, st)
		st = vals[i].out
	}

	return vals, st
}

func (f *flow) ifStmt(s *ast.IfStmt, st nullness.FlowState) nullness.FlowState {
	if s.Init != nil {
		st = f.stmt(s.Init, st)
	}

	c := f.eval(s.Cond, st)

	if c.out.Reachable() && !c.whenTrue.Reachable() && len(s.Body.List) > 0 {
		f.dead(s.Body)
	}

	then := f.block(s.Body, c.whenTrue)

	els := c.whenFalse
	if s.Else != nil {
		if c.out.Reachable() && !c.whenFalse.Reachable() {
			f.dead(s.Else)
		}

		els = f.stmt(s.Else, c.whenFalse)
	}

	return f.join(s, then, els)
}

func (f *flow) returnStmt(s *ast.ReturnStmt, st nullness.FlowState) nullness.FlowState {
	vals, st := f.evalList(s.Results, st)

	var results []nullness.State

	switch {
	case len(vals) == len(f.results):
		results = make([]nullness.State, len(vals))
		for i, v := range vals {
			results[i] = v.state(st)
		}

	case len(vals) == 1 && len(vals[0].tuple) == len(f.results):
		results = vals[0].tuple
	}

	for i, n := range results {
		if r := f.results[i]; r.Valid() {
			st = f.store(st, r, n)
		}
	}

	f.exit(s, flowctx.Return, "", st)

	return st.MarkUnreachable()
}

func (f *flow) branch(s *ast.BranchStmt, st nullness.FlowState) nullness.FlowState {
	var name string
	if s.Label != nil {
		name = s.Label.Name
	}

	switch s.Tok {
	case token.BREAK:
		f.exit(s, flowctx.Break, name, st)

	case token.CONTINUE:
		f.exit(s, flowctx.Continue, name, st)

	case token.GOTO:
		obj, _ := f.Info.Uses[s.Label].(*types.Label)
		if l, ok := f.labels[obj]; ok && s.Pos() < l.pos {
			l.pending = f.join(s, l.pending, st)
		}

	case token.FALLTHROUGH:
		f.through = f.join(s, f.through, st)
	}

	return st.MarkUnreachable()
}

// labelEntry returns the state at a label, including the gotos targeting it.
//
// Labels targeted by backward gotos are entered with all facts dropped.
func (f *flow) labelEntry(s *ast.LabeledStmt, st nullness.FlowState) nullness.FlowState {
	obj, _ := f.Info.Defs[s.Label].(*types.Label)

	l, ok := f.labels[obj]
	if !ok {
		return st
	}

	st = f.join(s, st, l.pending)
	l.pending = nullness.FlowState{}

	if l.backward {
		st = st.Widen()
	}

	return st
}

func (f *flow) labeled(s *ast.LabeledStmt, st nullness.FlowState) nullness.FlowState {
	name := s.Label.Name

	switch inner := s.Stmt.(type) {
	case *ast.ForStmt:
		return f.forStmt(inner, name, st)

	case *ast.RangeStmt:
		return f.rangeStmt(inner, name, st)

	case *ast.SwitchStmt:
		return f.switchStmt(inner, name, st)

	case *ast.TypeSwitchStmt:
		return f.typeSwitchStmt(inner, name, st)

	case *ast.SelectStmt:
		return f.selectStmt(inner, name, st)

	default:
		f.stack.Push(flowctx.Block, name)
		st = f.stmt(inner, st)
		fr := f.stack.Pop()

		return f.join(s, st, fr.Exit(flowctx.Break))
	}
}
