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

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/nullness"
)

// label is the flow information of a goto target.
type label struct {
	pos      token.Pos
	backward bool               // target of a goto following the label
	pending  nullness.FlowState // states of forward gotos seen so far
}

// scan collects the facts about a unit needed before its flow analysis.
type scan struct {
	info     *types.Info
	excluded map[*types.Var]struct{} // locals assigned in closures or with their address taken
	noFields map[*types.Var]struct{} // locals whose fields may change through aliases
	defers   map[*ast.BlockStmt][]*ast.FuncLit
	labels   map[*types.Label]*label
	gotos    map[*types.Label][]token.Pos
}

// prescan builds the reference table of unit and collects its deferred closures and labels.
func (f *flow) prescan(unit Unit) {
	s := scan{
		info:     f.Info,
		excluded: make(map[*types.Var]struct{}),
		noFields: make(map[*types.Var]struct{}),
		defers:   make(map[*ast.BlockStmt][]*ast.FuncLit),
		labels:   make(map[*types.Label]*label),
		gotos:    make(map[*types.Label][]token.Pos),
	}

	s.inspectBody(unit.Body)

	for obj, gotos := range s.gotos {
		l, ok := s.labels[obj]
		if !ok {
			continue
		}

		for _, pos := range gotos {
			if pos > l.pos {
				l.backward = true
			}
		}
	}

	f.labels = s.labels
	f.defers = s.defers

	f.collectLocals(unit, s)
	f.collectFields(unit.Body)
	f.collectGuards(unit.Body, s)
}

// deferredClosure reports whether c is a function literal called by a defer statement.
func deferredClosure(c inspector.Cursor) bool {
	if kind, _ := c.ParentEdge(); kind != edge.CallExpr_Fun {
		return false
	}

	kind, _ := c.Parent().ParentEdge()

	return kind == edge.DeferStmt_Call
}

// enclosingBody returns the body of the function c is nested in.
func enclosingBody(c inspector.Cursor) *ast.BlockStmt {
	for e := range c.Parent().Enclosing((*ast.FuncLit)(nil), (*ast.FuncDecl)(nil)) {
		switch n := e.Node().(type) {
		case *ast.FuncLit:
			return n.Body

		case *ast.FuncDecl:
			return n.Body
		}
	}

	return nil
}

func (s *scan) inspectBody(body inspector.Cursor) {
	nodes := []ast.Node{
		// keep-sorted start
		(*ast.BranchStmt)(nil),
		(*ast.FuncLit)(nil),
		(*ast.LabeledStmt)(nil),
		(*ast.SelectorExpr)(nil),
		(*ast.UnaryExpr)(nil),
		// keep-sorted end
	}

	body.Inspect(nodes, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		// keep-sorted start newline_separated=yes
		case *ast.BranchStmt:
			if n.Tok != token.GOTO || n.Label == nil {
				break
			}

			if obj, ok := s.info.Uses[n.Label].(*types.Label); ok {
				s.gotos[obj] = append(s.gotos[obj], n.Pos())
			}

		case *ast.FuncLit:
			if deferredClosure(c) {
				body := enclosingBody(c)
				s.defers[body] = append(s.defers[body], n)

				return true // analyzed inline
			}

			s.captured(c)

			return false // separate unit

		case *ast.LabeledStmt:
			if obj, ok := s.info.Defs[n.Label].(*types.Label); ok {
				s.labels[obj] = &label{pos: n.Pos()}
			}

		case *ast.SelectorExpr:
			sel, ok := s.info.Selections[n]
			if !ok || sel.Kind() != types.MethodVal {
				break
			}

			// Implicit address of an addressable receiver
			if fun, ok := sel.Obj().(*types.Func); ok && pointerReceiver(fun) && !isPointer(s.info.TypeOf(n.X)) {
				s.address(n.X)
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				s.address(n.X)
			}
			// keep-sorted end
		}

		return true
	})
}

// captured records the locals assigned inside a nested function literal.
func (s *scan) captured(lit inspector.Cursor) {
	nodes := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.UnaryExpr)(nil),
	}

	for c := range lit.Preorder(nodes...) {
		switch n := c.Node().(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				s.assigned(lhs)
			}

		case *ast.IncDecStmt:
			s.assigned(n.X)

		case *ast.RangeStmt:
			if n.Tok == token.ASSIGN {
				s.assigned(n.Key)
				s.assigned(n.Value)
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				s.address(n.X)
			}
		}
	}
}

func (s *scan) assigned(expr ast.Expr) {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		if v, ok := s.info.Uses[e].(*types.Var); ok {
			s.excluded[v] = struct{}{}
		}

	case *ast.SelectorExpr:
		if root := s.rootVar(e.X); root != nil {
			s.noFields[root] = struct{}{}
		}
	}
}

func (s *scan) address(expr ast.Expr) {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		if v, ok := s.info.Uses[e].(*types.Var); ok {
			s.excluded[v] = struct{}{}
		}

	case *ast.SelectorExpr, *ast.IndexExpr:
		if root := s.rootVar(e); root != nil {
			s.noFields[root] = struct{}{}
		}
	}
}

// rootVar returns the variable a selector or index chain starts with.
func (s *scan) rootVar(expr ast.Expr) *types.Var {
	for {
		switch e := ast.Unparen(expr).(type) {
		case *ast.Ident:
			v, _ := s.info.ObjectOf(e).(*types.Var)

			return v

		case *ast.SelectorExpr:
			expr = e.X

		case *ast.IndexExpr:
			expr = e.X

		default:
			return nil
		}
	}
}

// collectLocals adds the tracked locals of unit to the reference table, in declaration order.
func (f *flow) collectLocals(unit Unit, s scan) {
	add := func(v *types.Var) {
		if v == nil || v.IsField() {
			return
		}

		if _, ok := s.excluded[v]; ok {
			return
		}

		if !nillable(v.Type()) && !isStruct(v.Type()) {
			return
		}

		r := f.refs.addLocal(v)
		if _, ok := s.noFields[v]; ok {
			f.refs.noFields[r] = struct{}{}
		}
	}

	for _, list := range [...]*ast.FieldList{unit.Recv, unit.Type.Params, unit.Type.Results} {
		for id := range astutil.FieldIdents(list) {
			v, _ := f.Info.Defs[id].(*types.Var)
			add(v)
		}
	}

	nodes := []ast.Node{
		// keep-sorted start
		(*ast.CaseClause)(nil),
		(*ast.FuncLit)(nil),
		(*ast.Ident)(nil),
		// keep-sorted end
	}

	unit.Body.Inspect(nodes, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.CaseClause:
			if v, ok := f.Info.Implicits[n].(*types.Var); ok {
				add(v)
			}

		case *ast.FuncLit:
			return deferredClosure(c)

		case *ast.Ident:
			if v, ok := f.Info.Defs[n].(*types.Var); ok {
				add(v)
			}
		}

		return true
	})
}

// collectFields adds the field selector chains of the body to the reference table.
func (f *flow) collectFields(body inspector.Cursor) {
	nodes := []ast.Node{
		(*ast.FuncLit)(nil),
		(*ast.SelectorExpr)(nil),
	}

	body.Inspect(nodes, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.FuncLit:
			return deferredClosure(c)

		case *ast.SelectorExpr:
			f.addFieldChain(n)
		}

		return true
	})
}

func (f *flow) addFieldChain(sel *ast.SelectorExpr) nullness.Var {
	field, ok := selectedField(f.Info, sel)
	if !ok || !nillable(field.Type()) && !isStruct(field.Type()) {
		return nullness.NoVar
	}

	var parent nullness.Var

	switch x := ast.Unparen(sel.X).(type) {
	case *ast.Ident:
		parent = f.refs.lookup(f.Info, x)

	case *ast.SelectorExpr:
		parent = f.addFieldChain(x)

	default:
		return nullness.NoVar
	}

	if !parent.Valid() || f.refs.refs[parent].depth >= maxFieldDepth {
		return nullness.NoVar
	}

	if _, ok := f.refs.noFields[f.refs.root(parent)]; ok {
		return nullness.NoVar
	}

	def := nullness.Unknown

	switch st, ok := f.Annotations.Field(field); {
	case isStruct(field.Type()):
		def = nullness.NonNil

	case ok:
		def = st
	}

	return f.refs.addField(parent, field, def)
}

// collectGuards allocates a slot for every comma-ok type assertion whose ok variable
// is only assigned by the unit itself.
func (f *flow) collectGuards(body inspector.Cursor, s scan) {
	nodes := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.FuncLit)(nil),
	}

	body.Inspect(nodes, func(c inspector.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.AssignStmt:
			g, ok := f.commaOKGuard(n)
			if !ok {
				break
			}

			if _, ok := s.excluded[g.ok]; ok {
				break
			}

			g.slot = f.refs.addGuard(g.ok.Name())
			f.guardAt[n] = len(f.guards)
			f.guards = append(f.guards, g)

		case *ast.FuncLit:
			return deferredClosure(c)
		}

		return true
	})
}
