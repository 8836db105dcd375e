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
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/constant"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/internal/tracker"
)

// flow is the traversal of a single unit.
type flow struct {
	Stage

	ctx     context.Context
	logger  *slog.Logger
	tracker tracker.Tracker
	emit    *report.Emitter
	result  *Result

	refs    *refTable
	stack   flowctx.Stack
	labels  map[*types.Label]*label
	guards  []guard
	guardAt map[*ast.AssignStmt]int // index of the guard established by a comma-ok assignment
	defers  map[*ast.BlockStmt][]*ast.FuncLit // deferred closures by enclosing function body
	results []nullness.Var     // named results of the function being walked
	through nullness.FlowState // states falling through to the next case clause
}

// guard is the fact established by the boolean result of a comma-ok type assertion.
//
// Whether the guard holds is tracked per path in slot: [nullness.NonNil] after the
// assignment, [nullness.Nil] once ok or an involved reference is reassigned.
type guard struct {
	ok      *types.Var
	slot    nullness.Var
	subject nullness.Var // asserted operand, non-nil when the assertion succeeds
	bound   nullness.Var // interface typed result, non-nil when the assertion succeeds
}

func (g guard) apply(st nullness.FlowState) nullness.FlowState {
	if g.subject.Valid() {
		st = narrow(st, g.subject, nullness.NonNil)
	}

	if g.bound.Valid() {
		st = narrow(st, g.bound, nullness.NonNil)
	}

	return st
}

// span is a source range covering several nodes.
type span struct{ pos, end token.Pos }

func (s span) Pos() token.Pos { return s.pos }
func (s span) End() token.Pos { return s.end }

func (f *flow) analyze(unit Unit, body *ast.BlockStmt) {
	st := f.entry(unit)

	f.stack.Push(flowctx.Function, "")
	end := f.block(body, st)
	fn := f.stack.Pop()

	f.deferred(body, end, fn)
}

// entry returns the state at the start of unit.
func (f *flow) entry(unit Unit) nullness.FlowState {
	st := nullness.Entry(f.refs.Len())

	for _, r := range f.refs.fieldRefs {
		st = st.Set(r, f.refs.refs[r].def)
	}

	for _, g := range f.guards {
		st = st.Set(g.slot, nullness.Nil)
	}

	for _, list := range [...]*ast.FieldList{unit.Recv, unit.Type.Params} {
		for id := range astutil.FieldIdents(list) {
			v, _ := f.Info.Defs[id].(*types.Var)

			r := f.refs.local(v)
			if !r.Valid() {
				continue
			}

			if a, ok := f.Annotations.Param(unit.Func, v); ok {
				st = st.Set(r, a)
			} else {
				st = f.store(st, r, nullness.Unknown)
			}
		}
	}

	f.results = f.namedResults(unit.Type.Results)
	for _, r := range f.results {
		if r.Valid() {
			st = f.storeZero(st, r)
		}
	}

	return st
}

// namedResults returns the references of all named results, [nullness.NoVar] for untracked ones.
func (f *flow) namedResults(list *ast.FieldList) []nullness.Var {
	if list == nil {
		return nil
	}

	var results []nullness.Var

	for _, field := range list.List {
		for _, id := range field.Names {
			v, _ := f.Info.Defs[id].(*types.Var)
			results = append(results, f.refs.local(v))
		}
	}

	return results
}

// join merges the states of two control paths meeting at node.
func (f *flow) join(at ast.Node, a, b nullness.FlowState) nullness.FlowState {
	j, err := a.Join(b)
	if err != nil {
		panic(astutil.WrapInternal(at, err))
	}

	return j
}

// exit records an abrupt control transfer of st at node.
func (f *flow) exit(at ast.Node, edge flowctx.Edge, label string, st nullness.FlowState) {
	if err := f.stack.RecordExit(edge, label, st); err != nil {
		panic(astutil.WrapInternal(at, err))
	}
}

// narrow returns st with r known to be to, or an unreachable state when r is known to be the opposite.
func narrow(st nullness.FlowState, r nullness.Var, to nullness.State) nullness.FlowState {
	switch cur := st.Get(r); {
	case cur == to:
		return st

	case cur.Definite():
		return st.MarkUnreachable()

	default:
		return st.Narrow(r, to)
	}
}

// narrowValue narrows the reference v was read from, or checks the nullness of an untracked value.
func narrowValue(st nullness.FlowState, v value, to nullness.State) nullness.FlowState {
	if v.ref.Valid() {
		return narrow(st, v.ref, to)
	}

	if s := v.state(st); s.Definite() && s != to {
		return st.MarkUnreachable()
	}

	return st
}

// report emits a diagnostic when st is reachable.
func (f *flow) report(st nullness.FlowState, kind report.Kind, rng analysis.Range, args ...any) {
	if st.Reachable() {
		f.emit.Report(kind, rng, args...)
	}
}

func (f *flow) dead(rng analysis.Range) {
	f.emit.Report(report.DeadCode, rng)
}

// store assigns a value of nullness n to r, resetting the fields selected from it.
func (f *flow) store(st nullness.FlowState, r nullness.Var, n nullness.State) nullness.FlowState {
	switch {
	case f.refs.refs[r].value:
		n = nullness.NonNil

	case !n.Assigned():
		n = nullness.Unknown
	}

	st = st.Set(r, n)
	for _, d := range f.refs.descendants(r) {
		st = st.Set(d, f.refs.refs[d].def)
	}

	return f.killGuards(st, r)
}

// storeZero assigns the zero value to r.
func (f *flow) storeZero(st nullness.FlowState, r nullness.Var) nullness.FlowState {
	ref := &f.refs.refs[r]
	if !ref.value {
		return f.store(st, r, nullness.Nil)
	}

	st = st.Set(r, nullness.NonNil)
	for _, c := range ref.children {
		st = f.storeZero(st, c)
	}

	return f.killGuards(st, r)
}

// resetFields forgets the facts about all tracked fields, which a call may have changed.
func (f *flow) resetFields(st nullness.FlowState) nullness.FlowState {
	for _, r := range f.refs.fieldRefs {
		st = st.Set(r, f.refs.refs[r].def)
		st = f.killGuards(st, r)
	}

	return st
}

// killGuards drops the comma-ok guards involving r.
func (f *flow) killGuards(st nullness.FlowState, r nullness.Var) nullness.FlowState {
	for _, g := range f.guards {
		if g.subject == r || g.bound == r {
			st = st.Set(g.slot, nullness.Nil)
		}
	}

	return st
}

// killGuard drops the guards of the variable assigned by lhs.
func (f *flow) killGuard(lhs ast.Expr, st nullness.FlowState) nullness.FlowState {
	id, ok := ast.Unparen(lhs).(*ast.Ident)
	if !ok {
		return st
	}

	v, ok := f.Info.ObjectOf(id).(*types.Var)
	if !ok {
		return st
	}

	for _, g := range f.guards {
		if g.ok == v {
			st = st.Set(g.slot, nullness.Nil)
		}
	}

	return st
}

// guarded returns st narrowed by the guard of ok holding on the current path.
func (f *flow) guarded(ok *types.Var, st nullness.FlowState) (nullness.FlowState, bool) {
	for _, g := range f.guards {
		if g.ok == ok && st.Get(g.slot).IsNonNil() {
			return g.apply(st), true
		}
	}

	return st, false
}

func (f *flow) recordConstant(expr ast.Expr, c constant.Constant) {
	if c.IsValid() && !f.emit.Muted() {
		f.result.Constants[expr] = c
	}
}

func (f *flow) recordOptimized(expr ast.Expr, c constant.Constant) {
	if c.IsValid() && !f.emit.Muted() {
		f.result.Optimized[expr] = c
	}
}
