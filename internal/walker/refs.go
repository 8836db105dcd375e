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

	"fillmore-labs.com/flowguard/internal/nullness"
)

// maxFieldDepth is the maximum number of field selections tracked below a local variable.
const maxFieldDepth = 3

// ref is a tracked reference: a local variable or a field selector chain rooted at one.
type ref struct {
	name     string
	field    *types.Var     // selected field, nil for locals
	parent   nullness.Var   // selecting reference, [nullness.NoVar] for locals
	depth    int            // number of field selections
	def      nullness.State // state of a field after a call or assignment of its parent
	value    bool           // struct typed, never nil
	children []nullness.Var
}

type fieldKey struct {
	parent nullness.Var
	field  *types.Var
}

// refTable maps the references of one unit to flow state variables.
type refTable struct {
	refs      []ref
	locals    map[*types.Var]nullness.Var
	fields    map[fieldKey]nullness.Var
	fieldRefs []nullness.Var
	noFields  map[nullness.Var]struct{}
}

func newRefTable() *refTable {
	return &refTable{
		locals:   make(map[*types.Var]nullness.Var),
		fields:   make(map[fieldKey]nullness.Var),
		noFields: make(map[nullness.Var]struct{}),
	}
}

// Len returns the number of tracked references.
func (t *refTable) Len() int { return len(t.refs) }

func (t *refTable) addLocal(v *types.Var) nullness.Var {
	if r, ok := t.locals[v]; ok {
		return r
	}

	r := nullness.Var(len(t.refs))
	t.refs = append(t.refs, ref{
		name:   v.Name(),
		parent: nullness.NoVar,
		def:    nullness.Unknown,
		value:  isStruct(v.Type()),
	})
	t.locals[v] = r

	return r
}

func (t *refTable) addField(parent nullness.Var, field *types.Var, def nullness.State) nullness.Var {
	key := fieldKey{parent: parent, field: field}
	if r, ok := t.fields[key]; ok {
		return r
	}

	p := &t.refs[parent]

	r := nullness.Var(len(t.refs))
	t.refs = append(t.refs, ref{
		name:   p.name + "." + field.Name(),
		field:  field,
		parent: parent,
		depth:  p.depth + 1,
		def:    def,
		value:  isStruct(field.Type()),
	})
	t.fields[key] = r
	t.fieldRefs = append(t.fieldRefs, r)
	t.refs[parent].children = append(t.refs[parent].children, r)

	return r
}

// addGuard adds a slot recording whether a comma-ok guard of ok holds.
func (t *refTable) addGuard(ok string) nullness.Var {
	r := nullness.Var(len(t.refs))
	t.refs = append(t.refs, ref{
		name:   ok + "?",
		parent: nullness.NoVar,
		def:    nullness.Nil,
	})

	return r
}

// local returns the reference of the local variable v.
func (t *refTable) local(v *types.Var) nullness.Var {
	if r, ok := t.locals[v]; ok {
		return r
	}

	return nullness.NoVar
}

// field returns the reference of field selected from parent.
func (t *refTable) field(parent nullness.Var, field *types.Var) nullness.Var {
	if !parent.Valid() {
		return nullness.NoVar
	}

	if r, ok := t.fields[fieldKey{parent: parent, field: field}]; ok {
		return r
	}

	return nullness.NoVar
}

// lookup returns the reference denoted by expr, a local variable or a field selector chain.
func (t *refTable) lookup(info *types.Info, expr ast.Expr) nullness.Var {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		v, _ := info.ObjectOf(e).(*types.Var)

		return t.local(v)

	case *ast.SelectorExpr:
		field, ok := selectedField(info, e)
		if !ok {
			return nullness.NoVar
		}

		return t.field(t.lookup(info, e.X), field)

	default:
		return nullness.NoVar
	}
}

// selectedField returns the field directly selected by sel, excluding promoted fields.
func selectedField(info *types.Info, sel *ast.SelectorExpr) (*types.Var, bool) {
	s, ok := info.Selections[sel]
	if !ok || s.Kind() != types.FieldVal || len(s.Index()) != 1 {
		return nil, false
	}

	field, ok := s.Obj().(*types.Var)

	return field, ok
}

// root returns the local variable a reference is rooted at.
func (t *refTable) root(r nullness.Var) nullness.Var {
	for t.refs[r].parent.Valid() {
		r = t.refs[r].parent
	}

	return r
}

// descendants returns all field references selected below r.
func (t *refTable) descendants(r nullness.Var) []nullness.Var {
	var result []nullness.Var

	queue := append([]nullness.Var(nil), t.refs[r].children...)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		result = append(result, c)
		queue = append(queue, t.refs[c].children...)
	}

	return result
}

// subject describes r in diagnostics.
func (t *refTable) subject(r nullness.Var) string {
	if !r.Valid() {
		return "This expression"
	}

	if t.refs[r].field != nil {
		return "The field " + t.refs[r].name
	}

	return "The variable " + t.refs[r].name
}
