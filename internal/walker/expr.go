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
	"errors"
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/flowguard/internal/constant"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
)

// value is the outcome of evaluating an expression.
type value struct {
	out       nullness.FlowState // state after the evaluation
	whenTrue  nullness.FlowState // state when a boolean expression yields true
	whenFalse nullness.FlowState // state when a boolean expression yields false
	null      nullness.State     // nullness of an untracked result
	ref       nullness.Var       // tracked reference the result was read from
	konst     constant.Constant  // compile-time constant
	flow      constant.Constant  // boolean constant proved by the flow analysis
	tuple     []nullness.State   // nullness of the results of multi-value calls
}

func plain(st nullness.FlowState, null nullness.State) value {
	return value{out: st, whenTrue: st, whenFalse: st, null: null, ref: nullness.NoVar}
}

// folded returns the boolean constant v is known to yield, if any.
func (v value) folded() constant.Constant {
	if v.konst.IsValid() {
		return v.konst
	}

	return v.flow
}

// decided returns v with the successor excluded by a constant condition c marked unreachable.
func (v value) decided(c constant.Constant) value {
	switch {
	case constant.IsTrue(c):
		v.whenFalse = v.out.MarkUnreachable()

	case constant.IsFalse(c):
		v.whenTrue = v.out.MarkUnreachable()
	}

	return v
}

// state returns the nullness of v at st.
func (v value) state(st nullness.FlowState) nullness.State {
	n := v.null
	if v.ref.Valid() {
		n = st.Get(v.ref)
	}

	if !n.Assigned() {
		return nullness.Unknown
	}

	return n
}

// frame is the evaluation of one expression on the work stack.
type frame struct {
	expr     ast.Expr
	in       nullness.FlowState
	operands []ast.Expr
	vals     []value
	commaOK  bool
}

// operandEntry returns the state the next operand is evaluated in.
func (fr *frame) operandEntry() nullness.FlowState {
	n := len(fr.vals)
	if n == 0 {
		return fr.in
	}

	prev := fr.vals[n-1]

	if b, ok := fr.expr.(*ast.BinaryExpr); ok {
		switch b.Op {
		case token.LAND:
			return prev.whenTrue

		case token.LOR:
			return prev.whenFalse
		}
	}

	return prev.out
}

// last returns the state after all operands are evaluated.
func (fr *frame) last() nullness.FlowState {
	if n := len(fr.vals); n > 0 {
		return fr.vals[n-1].out
	}

	return fr.in
}

// eval evaluates expr starting in st.
func (f *flow) eval(expr ast.Expr, st nullness.FlowState) value {
	return f.evalExpr(expr, st, false)
}

// evalExpr evaluates expr with an explicit work stack, visiting operands left to right.
//
// commaOK marks expressions in a two-value assignment.
func (f *flow) evalExpr(expr ast.Expr, st nullness.FlowState, commaOK bool) value {
	stack := []*frame{f.enter(expr, st, commaOK)}

	for {
		top := stack[len(stack)-1]
		if n := len(top.vals); n < len(top.operands) {
			stack = append(stack, f.enter(top.operands[n], top.operandEntry(), false))

			continue
		}

		v := f.combine(top)
		if !v.konst.IsValid() {
			f.recordOptimized(top.expr, v.flow)
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return v
		}

		parent := stack[len(stack)-1]
		parent.vals = append(parent.vals, v)
	}
}

func (f *flow) enter(expr ast.Expr, st nullness.FlowState, commaOK bool) *frame {
	operands := f.operands(expr)

	return &frame{
		expr:     expr,
		in:       st,
		operands: operands,
		vals:     make([]value, 0, len(operands)),
		commaOK:  commaOK,
	}
}

// operands returns the subexpressions of expr evaluated before expr itself.
//
// Constant expressions, types and function literals have none.
func (f *flow) operands(expr ast.Expr) []ast.Expr {
	if f.constantExpr(expr) || f.Info.Types[expr].IsType() {
		return nil
	}

	switch e := expr.(type) {
	case *ast.ParenExpr:
		return []ast.Expr{e.X}

	case *ast.UnaryExpr:
		return []ast.Expr{e.X}

	case *ast.BinaryExpr:
		return []ast.Expr{e.X, e.Y}

	case *ast.StarExpr:
		return []ast.Expr{e.X}

	case *ast.SelectorExpr:
		if sel, ok := f.Info.Selections[e]; ok && sel.Kind() != types.MethodExpr {
			return []ast.Expr{e.X}
		}

	case *ast.IndexExpr:
		if !isSignature(f.Info.TypeOf(e.X)) { // not an instantiation
			return []ast.Expr{e.X, e.Index}
		}

	case *ast.SliceExpr:
		ops := []ast.Expr{e.X}
		for _, x := range [...]ast.Expr{e.Low, e.High, e.Max} {
			if x != nil {
				ops = append(ops, x)
			}
		}

		return ops

	case *ast.TypeAssertExpr:
		return []ast.Expr{e.X}

	case *ast.CallExpr:
		return f.callOperands(e)

	case *ast.CompositeLit:
		return f.elements(e)

	case *ast.KeyValueExpr:
		return []ast.Expr{e.Key, e.Value}
	}

	return nil
}

func (f *flow) elements(lit *ast.CompositeLit) []ast.Expr {
	structLit := isStruct(f.Info.TypeOf(lit))

	ops := make([]ast.Expr, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		switch {
		case !ok:
			ops = append(ops, elt)

		case structLit:
			ops = append(ops, kv.Value)

		default:
			ops = append(ops, kv.Key, kv.Value)
		}
	}

	return ops
}

// combine computes the value of an expression from the values of its operands.
func (f *flow) combine(fr *frame) value {
	if f.constantExpr(fr.expr) {
		return f.constExpr(fr.expr, fr.in)
	}

	st := fr.last()

	if f.Info.Types[fr.expr].IsNil() {
		return plain(st, nullness.Nil)
	}

	switch e := fr.expr.(type) {
	case *ast.Ident:
		return f.ident(e, st)

	case *ast.ParenExpr:
		return fr.vals[0]

	case *ast.UnaryExpr:
		return f.unary(e, fr.vals[0])

	case *ast.BinaryExpr:
		return f.binary(e, fr.vals[0], fr.vals[1])

	case *ast.StarExpr:
		if len(fr.vals) == 0 { // type
			return plain(st, nullness.Unknown)
		}

		return plain(f.deref(st, fr.vals[0], e.X), nullness.Unknown)

	case *ast.SelectorExpr:
		return f.selector(e, fr)

	case *ast.IndexExpr:
		if len(fr.vals) == 0 { // instantiated function
			return plain(st, nullness.NonNil)
		}

		if isPointerToArray(f.Info.TypeOf(e.X)) {
			st = f.deref(st, fr.vals[0], e.X)
		}

		return plain(st, nullness.Unknown)

	case *ast.IndexListExpr:
		return plain(st, nullness.NonNil)

	case *ast.SliceExpr:
		if isPointerToArray(f.Info.TypeOf(e.X)) {
			st = f.deref(st, fr.vals[0], e.X)
		}

		return plain(st, nullness.Unknown)

	case *ast.TypeAssertExpr:
		return f.typeAssert(e, fr)

	case *ast.CallExpr:
		return f.call(e, fr)

	case *ast.CompositeLit, *ast.FuncLit:
		return plain(st, nullness.NonNil)

	default:
		return plain(st, nullness.Unknown)
	}
}

// constantExpr reports whether expr is a maximal constant expression or a possibly invalid literal.
func (f *flow) constantExpr(expr ast.Expr) bool {
	if tv, ok := f.Info.Types[expr]; ok && tv.Value != nil {
		return true
	}

	lit, _ := literal(expr)

	return lit != nil
}

// literal returns the basic literal expr consists of, and whether it is negated.
func literal(expr ast.Expr) (*ast.BasicLit, bool) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e, false

	case *ast.UnaryExpr:
		if e.Op != token.SUB {
			break
		}

		if lit, ok := ast.Unparen(e.X).(*ast.BasicLit); ok {
			return lit, true
		}
	}

	return nil, false
}

func (f *flow) constExpr(expr ast.Expr, st nullness.FlowState) value {
	c := f.constantValue(expr)
	f.recordConstant(expr, c)

	v := plain(st, nullness.NonNil)
	v.konst = c

	return v.decided(c)
}

// constantValue converts the value of a constant expression.
//
// Literals are validated against the range of their type; invalid ones are
// reported and yield [constant.NotAConstant].
func (f *flow) constantValue(expr ast.Expr) constant.Constant {
	tv := f.Info.Types[expr]

	lit, negated := literal(expr)
	if lit == nil {
		c, _ := constant.FromValue(tv.Value, tv.Type)

		return c
	}

	k := literalKind(lit.Kind, tv.Type)
	if k == constant.Invalid {
		c, _ := constant.FromValue(tv.Value, tv.Type)

		return c
	}

	c, err := constant.FromLiteral(k, lit.Value, negated)
	switch {
	case err == nil:
		return c

	case errors.Is(err, constant.ErrRange):
		f.emit.Report(report.InvalidLiteral, expr, err)

		return constant.NotAConstant

	default:
		c, _ := constant.FromValue(tv.Value, tv.Type)

		return c
	}
}

// literalKind returns the kind a literal token of type typ is validated as,
// or [constant.Invalid] when the literal is only converted.
func literalKind(tok token.Token, typ types.Type) constant.Kind {
	if !typed(typ) {
		switch tok {
		case token.INT:
			return constant.Int64

		case token.FLOAT:
			return constant.Float64

		case token.CHAR:
			return constant.Rune

		case token.STRING:
			return constant.String

		default:
			return constant.Invalid
		}
	}

	switch k := constant.KindOf(typ); tok {
	case token.INT:
		if k.IsNumeric() {
			return k
		}

	case token.FLOAT:
		if k.IsFloat() {
			return k
		}

	case token.CHAR:
		if k.IsInteger() {
			return k
		}

	case token.STRING:
		if k == constant.String {
			return k
		}
	}

	return constant.Invalid
}

// typed reports whether the type checker assigned a valid type.
func typed(typ types.Type) bool {
	if typ == nil {
		return false
	}

	b, ok := typ.(*types.Basic)

	return !ok || b.Kind() != types.Invalid
}

func (f *flow) ident(id *ast.Ident, st nullness.FlowState) value {
	switch obj := f.Info.ObjectOf(id).(type) {
	case *types.Var:
		v := plain(st, nullness.Unknown)
		if r := f.refs.local(obj); r.Valid() {
			v.ref = r
		}

		if wt, ok := f.guarded(obj, st); ok {
			v.whenTrue = wt
		}

		return v

	case *types.Func:
		return plain(st, nullness.NonNil)

	case *types.Nil:
		return plain(st, nullness.Nil)

	default:
		return plain(st, nullness.Unknown)
	}
}

func (f *flow) unary(e *ast.UnaryExpr, x value) value {
	switch e.Op {
	case token.NOT:
		return value{
			out:       x.out,
			whenTrue:  x.whenFalse,
			whenFalse: x.whenTrue,
			null:      nullness.Unknown,
			ref:       nullness.NoVar,
			flow:      constant.Not(x.folded()),
		}

	case token.AND:
		return plain(x.out, nullness.NonNil)

	default:
		return plain(x.out, nullness.Unknown)
	}
}

func (f *flow) binary(e *ast.BinaryExpr, x, y value) value {
	switch e.Op {
	case token.LAND:
		return value{
			out:       f.join(e, x.whenFalse, y.out),
			whenTrue:  y.whenTrue,
			whenFalse: f.join(e, x.whenFalse, y.whenFalse),
			null:      nullness.Unknown,
			ref:       nullness.NoVar,
			flow:      constant.And(x.folded(), y.folded()),
		}

	case token.LOR:
		return value{
			out:       f.join(e, x.whenTrue, y.out),
			whenTrue:  f.join(e, x.whenTrue, y.whenTrue),
			whenFalse: y.whenFalse,
			null:      nullness.Unknown,
			ref:       nullness.NoVar,
			flow:      constant.Or(x.folded(), y.folded()),
		}

	case token.EQL, token.NEQ:
		return f.compare(e, x, y)

	default:
		return plain(y.out, nullness.Unknown)
	}
}

// compare evaluates a comparison, folding and narrowing comparisons with nil.
func (f *flow) compare(e *ast.BinaryExpr, x, y value) value {
	st := y.out

	var operand value

	switch {
	case f.Info.Types[e.Y].IsNil():
		operand = x

	case f.Info.Types[e.X].IsNil():
		operand = y

	default:
		return plain(st, nullness.Unknown)
	}

	eq := e.Op == token.EQL

	if s := operand.state(st); s.Definite() {
		isNil := s == nullness.Nil
		always := isNil == eq

		desc := "cannot be nil"
		if isNil {
			desc = "can only be nil"
		}

		kind := report.NullComparisonAlwaysFalse
		if always {
			kind = report.RedundantNullCheck
		}

		f.report(st, kind, e, f.refs.subject(operand.ref), desc)

		v := plain(st, nullness.Unknown)
		v.flow = constant.MakeBool(always)

		return v.decided(v.flow)
	}

	v := plain(st, nullness.Unknown)
	if operand.ref.Valid() {
		isNil, nonNil := narrow(st, operand.ref, nullness.Nil), narrow(st, operand.ref, nullness.NonNil)
		if eq {
			v.whenTrue, v.whenFalse = isNil, nonNil
		} else {
			v.whenTrue, v.whenFalse = nonNil, isNil
		}
	}

	return v
}

func (f *flow) selector(e *ast.SelectorExpr, fr *frame) value {
	if len(fr.vals) == 0 { // qualified identifier or method expression
		if _, ok := f.Info.ObjectOf(e.Sel).(*types.Func); ok {
			return plain(fr.in, nullness.NonNil)
		}

		return plain(fr.in, nullness.Unknown)
	}

	x := fr.vals[0]
	st := x.out
	xt := f.Info.TypeOf(e.X)

	sel := f.Info.Selections[e]
	switch sel.Kind() {
	case types.FieldVal:
		if isPointer(xt) {
			st = f.deref(st, x, e.X)
		}

		field, ok := selectedField(f.Info, e)
		if !ok {
			return plain(st, nullness.Unknown)
		}

		if r := f.refs.field(x.ref, field); r.Valid() {
			v := plain(st, nullness.Unknown)
			v.ref = r

			return v
		}

		return plain(st, f.fieldDefault(field))

	case types.MethodVal:
		fun, _ := sel.Obj().(*types.Func)
		if isInterface(xt) || isPointer(xt) && fun != nil && !pointerReceiver(fun) {
			st = f.deref(st, x, e.X)
		}

		return plain(st, nullness.NonNil)

	default:
		return plain(st, nullness.Unknown)
	}
}

// fieldDefault returns the nullness of an untracked read of field.
func (f *flow) fieldDefault(field *types.Var) nullness.State {
	if isStruct(field.Type()) {
		return nullness.NonNil
	}

	if st, ok := f.Annotations.Field(field); ok {
		return st
	}

	return nullness.Unknown
}

func (f *flow) typeAssert(e *ast.TypeAssertExpr, fr *frame) value {
	x := fr.vals[0]
	if fr.commaOK {
		return plain(x.out, nullness.Unknown)
	}

	st := f.deref(x.out, x, e.X)

	if isInterface(f.Info.TypeOf(e.Type)) {
		return plain(st, nullness.NonNil)
	}

	return plain(st, nullness.Unknown)
}

// deref checks a dereference of v at st and returns the state where the access succeeded.
func (f *flow) deref(st nullness.FlowState, v value, at ast.Expr) nullness.FlowState {
	switch v.state(st) {
	case nullness.Nil:
		f.report(st, report.NullPointerAccess, at, f.refs.subject(v.ref))

	case nullness.MaybeNil:
		f.report(st, report.PotentialNullPointerAccess, at, f.refs.subject(v.ref))
	}

	if v.ref.Valid() {
		st = st.Set(v.ref, nullness.NonNil)
	}

	return st
}
