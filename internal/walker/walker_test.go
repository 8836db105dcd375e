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

package walker_test

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/internal/testsource"
	. "fillmore-labs.com/flowguard/internal/walker"
)

const prelude = `package test

type T struct{ f int }

type U struct{ next *U }

`

// analysis is the outcome of analyzing all functions of a test source.
type analysis struct {
	fset   *token.FileSet
	file   *ast.File
	diags  []report.Diagnostic
	result *Result
}

func analyzeSource(t *testing.T, src string, table *assertion.Table) analysis {
	t.Helper()

	fset, f := testsource.ParseFile(t, prelude+src)
	_, info := testsource.Check(t, fset, f)

	return analyzeChecked(t, fset, f, info, table)
}

func analyzeChecked(t *testing.T, fset *token.FileSet, f *ast.File, info *types.Info, table *assertion.Table) analysis {
	t.Helper()

	stage := Stage{
		Info:        info,
		Assertions:  table,
		Annotations: NewAnnotations(info, []*ast.File{f}),
	}

	emit := report.NewEmitter(config.BitMask[report.Kinds]{})
	res := NewResult()

	root := inspector.New([]*ast.File{f}).Root()
	for c := range root.Preorder((*ast.FuncDecl)(nil)) {
		unit, ok := NewUnit(info, c)
		if !ok {
			continue
		}

		require.NoError(t, stage.Analyze(t.Context(), unit, emit, res))
	}

	return analysis{fset: fset, file: f, diags: emit.Diagnostics(), result: res}
}

// findings returns the reported diagnostics as line:code.
func (a analysis) findings() []string {
	got := make([]string, 0, len(a.diags))
	for _, d := range a.diags {
		got = append(got, fmt.Sprintf("%d:%s", a.fset.Position(d.Pos).Line, d.Kind))
	}

	return got
}

// wanted returns the diagnostics expected by "// want code..." comments as line:code.
func (a analysis) wanted() []string {
	var want []string

	for _, cg := range a.file.Comments {
		for _, c := range cg.List {
			codes, ok := strings.CutPrefix(c.Text, "// want ")
			if !ok {
				continue
			}

			line := a.fset.Position(c.Pos()).Line
			for _, code := range strings.Fields(codes) {
				want = append(want, fmt.Sprintf("%d:%s", line, code))
			}
		}
	}

	return want
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name string
		src  string
	}{
		{"nil_access", `
func f() int {
	var p *T
	return p.f // want npe
}
`},
		{"potential_nil_access", `
func f(p *T) int {
	if p == nil {
		println()
	}
	return p.f // want pnpe
}
`},
		{"checked_access", `
func f(p *T) int {
	if p == nil {
		return 0
	}
	return p.f
}
`},
		{"redundant_check", `
func f() {
	p := &T{}
	if p != nil { // want rnc
		println()
	}
	var q *T
	if q != nil { // want ncf dead
		println()
	}
}
`},
		{"short_circuit", `
func f(p *T) bool {
	return p != nil && p.f > 0
}
`},
		{"short_circuit_wrong", `
func f(p *T) bool {
	return p == nil && p.f > 0 // want npe
}
`},
		{"loop_join", `
func f(ps []*T) int {
	var p *T
	for _, q := range ps {
		if q != nil {
			p = q
		}
	}
	return p.f // want pnpe
}
`},
		{"loop_stable", `
func f(p *T) int {
	n := 0
	for i := 0; i < 3; i++ {
		if p == nil {
			return 0
		}
		n += p.f
	}
	return n
}
`},
		{"loop_first_iteration", `
func f(ps []*T) {
	var last *T
	for _, p := range ps {
		if last != nil {
			println(last.f)
		}
		last = p
	}
}
`},
		{"loop_break", `
func f(ps []*T) int {
	var found *T
	for _, p := range ps {
		if p != nil {
			found = p
			break
		}
	}
	return found.f // want pnpe
}
`},
		{"infinite_loop", `
func f(ch chan *T) *T {
	for {
		if p := <-ch; p != nil {
			return p
		}
	}
}
`},
		{"dead_after_panic", `
func f() {
	panic("unreachable")
	println() // want dead
	println()
}
`},
		{"forward_goto", `
func f(p *T) int {
	if p == nil {
		goto fail
	}
	return p.f
fail:
	return 0
}
`},
		{"type_switch_nil", `
func f(x any) {
	switch v := x.(type) {
	case nil:
		println(v == nil) // want rnc
	case *T:
		println(v.f)
	}
}
`},
		{"type_switch_unnecessary_nil", `
func f() {
	var x any = 1
	switch x.(type) {
	case nil: // want unp
	case int:
	}
}
`},
		{"type_switch_nil_selector", `
func f() {
	var x any
	switch x.(type) { // want npe
	case int:
	}
}
`},
		{"switch_case_nil", `
func f(p *T) int {
	switch p {
	case nil:
		return 0
	}
	return p.f
}
`},
		{"fallthrough", `
func f(p *T, n int) int {
	switch n {
	case 0:
		p = nil
		fallthrough
	case 1:
		return p.f // want pnpe
	}
	return 0
}
`},
		{"comma_ok", `
func f(x any) int {
	t, ok := x.(*T)
	if !ok {
		return 0
	}
	_ = t
	y, ok := x.(interface{ M() })
	if ok {
		y.M()
	}
	return 1
}
`},
		{"comma_ok_one_arm", `
func f(b bool) {
	var x any
	ok := true
	if b {
		_, ok = x.(int)
	}
	if ok {
		println("reached when b is false")
	}
}
`},
		{"comma_ok_joined", `
type I interface{ M() }

func f(b bool, x I) {
	if x == nil {
		println()
	}
	ok := true
	if b {
		_, ok = x.(I)
	}
	if ok {
		x.M() // want pnpe
	}
}
`},
		{"comma_ok_redeclared", `
func f(xs []any) {
	for _, x := range xs {
		if x == nil {
			println()
		}
		var ok bool
		if len(xs) > 1 {
			_, ok = x.(int)
		}
		if ok {
			println(x != nil)
		}
	}
}
`},
		{"redundant_assignment", `
func f(p *T) {
	p = p // want ras
	_ = p
}
`},
		{"field_nil", `
func f() *U {
	var u U
	return u.next.next // want npe
}
`},
		{"field_checked", `
func f(u *U) *U {
	if u.next != nil {
		return u.next.next
	}
	return nil
}
`},
		{"annotated_result", `
//flowguard:nilable return
func find() *T { return nil }

func f() int {
	return find().f // want pnpe
}
`},
		{"annotated_param", `
//flowguard:nonnil p
func f(p *T) bool {
	return p == nil // want ncf
}
`},
		{"deferred_closure", `
func f() {
	var p *T
	defer func() {
		println(p.f) // want npe
	}()
	p = nil
}
`},
		{"nested_deferred_closure", `
func f() {
	var p *T
	defer func() {
		defer func() {
			println(p.f)
		}()
		p = &T{}
	}()
}

func g() {
	p := &T{}
	defer func() {
		defer func() {
			println(p.f) // want npe
		}()
		p = nil
	}()
}
`},
		{"close_nil_channel", `
func f() {
	var ch chan int
	close(ch) // want npe
}
`},
		{"append", `
func f() int {
	var s []*T
	s = append(s, &T{})
	return len(s)
}
`},
		{"nil_map_write", `
func f() {
	var m map[string]int
	m["a"] = 1 // want npe
}
`},
		{"captured", `
func f() {
	var p *T
	fn := func() { p = &T{} }
	fn()
	println(p.f)
}
`},
		{"address_taken", `
func f() {
	var p *T
	q := &p
	*q = &T{}
	println(p.f)
}
`},
		{"call_nil_func", `
func f() {
	var fn func()
	fn() // want npe
}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := analyzeSource(t, tt.src, nil)

			assert.ElementsMatch(t, a.wanted(), a.findings())
		})
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()

	a := analyzeSource(t, `
func f() *U {
	var u U
	return u.next.next
}
`, nil)

	require.Len(t, a.diags, 1)
	assert.Equal(t, "Nil pointer access: The field u.next can only be nil at this location (fg:npe)", a.diags[0].Message)
	assert.Equal(t, report.Error, a.diags[0].Severity())
}

func TestAssertions(t *testing.T) {
	t.Parallel()

	const src = `
func check(p *T) {}

func isTrue(b bool) {}

func f(p *T) int {
	if p == nil {
		println()
	}
	check(p)
	return p.f
}

func g(p *T) int {
	if p == nil {
		println()
	}
	isTrue(p != nil)
	return p.f
}
`

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		a := analyzeSource(t, src, nil)
		assert.Equal(t, []report.Kind{report.PotentialNullPointerAccess, report.PotentialNullPointerAccess}, kinds(a.diags))
	})

	t.Run("registered", func(t *testing.T) {
		t.Parallel()

		table := assertion.NewTable(mustShape(t, "test.check:0:nonnil"), mustShape(t, "test.isTrue:0:true"))

		a := analyzeSource(t, src, table)
		assert.Empty(t, a.diags)
	})
}

func TestAssertionInLoop(t *testing.T) {
	t.Parallel()

	table := assertion.NewTable(mustShape(t, "test.check:0:nonnil"))

	a := analyzeSource(t, `
func check(p *T) {}

func next() *T { return nil }

func f() {
	var x *T
	for {
		x = next()
		check(x)
		if x == nil { // want ncf dead
			println()
		}
	}
}
`, table)

	assert.ElementsMatch(t, a.wanted(), a.findings())
}

func TestAssertionBeforeRecover(t *testing.T) {
	t.Parallel()

	table := assertion.NewTable(mustShape(t, "test.check:0:nonnil"))

	a := analyzeSource(t, `
func check(p *T) {}

func f(p *T) int {
	if p == nil {
		println()
	}
	defer func() {
		recover()
		_ = p.f // want pnpe
	}()
	check(p)
	return p.f
}
`, table)

	assert.ElementsMatch(t, a.wanted(), a.findings())
}

func TestInternalError(t *testing.T) {
	t.Parallel()

	rng := &ast.BlockStmt{Lbrace: 10, Rbrace: 50}

	recovered := func(fn func()) (r any) {
		defer func() { r = recover() }()
		fn()

		return nil
	}

	t.Run("runtime", func(t *testing.T) {
		t.Parallel()

		r := recovered(func() {
			var s []int
			_ = s[len(s)+3]
		})

		err := InternalError(rng, r)

		var ierr *astutil.InternalError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, rng.Pos(), ierr.Pos())
		assert.Equal(t, rng.End(), ierr.End())

		var rerr runtime.Error
		assert.ErrorAs(t, err, &rerr)
	})

	t.Run("inconsistent", func(t *testing.T) {
		t.Parallel()

		err := InternalError(rng, fmt.Errorf("%w: test", nullness.ErrInconsistent))
		require.ErrorIs(t, err, nullness.ErrInconsistent)
	})

	t.Run("foreign", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "boom", func() { _ = InternalError(rng, "boom") })
		assert.Panics(t, func() { _ = InternalError(rng, errors.New("foreign")) })
	})
}

func mustShape(t *testing.T, s string) assertion.Shape {
	t.Helper()

	shape, err := assertion.ParseShape(s)
	require.NoError(t, err)

	return shape
}

func kinds(diags []report.Diagnostic) []report.Kind {
	result := make([]report.Kind, 0, len(diags))
	for _, d := range diags {
		result = append(result, d.Kind)
	}

	return result
}

func TestConstants(t *testing.T) {
	t.Parallel()

	a := analyzeSource(t, `
const debug = false

func f(p *T) bool {
	x := 40 + 2
	if debug { // want dead
		println(x)
	}
	return p == nil || p != nil // want rnc
}
`, nil)

	assert.ElementsMatch(t, a.wanted(), a.findings())

	assert.Equal(t, map[string]string{
		"40 + 2": "42",
		"debug":  "false",
	}, exprStrings(a.result.Constants))

	assert.Equal(t, map[string]string{
		"p != nil":             "true",
		"p == nil || p != nil": "true",
	}, exprStrings(a.result.Optimized))
}

func TestResultMerge(t *testing.T) {
	t.Parallel()

	a := analyzeSource(t, `
func f(p *T) bool {
	x := 1 << 3
	_ = x
	return p != nil || p == nil
}
`, nil)

	res := NewResult()
	res.Merge(NewResult())
	assert.Empty(t, res.Constants)

	res.Merge(a.result)
	assert.Equal(t, exprStrings(a.result.Constants), exprStrings(res.Constants))
	assert.Equal(t, exprStrings(a.result.Optimized), exprStrings(res.Optimized))
	assert.NotEmpty(t, res.Optimized)
}

func exprStrings[C fmt.Stringer](m map[ast.Expr]C) map[string]string {
	result := make(map[string]string, len(m))
	for expr, c := range m {
		result[types.ExprString(expr)] = c.String()
	}

	return result
}

func TestInvalidLiteral(t *testing.T) {
	t.Parallel()

	fset, f := testsource.ParseFile(t, `package test

func f() {
	x := 9223372036854775808
	_ = x
}
`)

	_, info, errs := testsource.CheckLenient(fset, f)
	require.NotEmpty(t, errs, "overflow should be a type error")

	a := analyzeChecked(t, fset, f, info, nil)

	require.Len(t, a.diags, 1)
	assert.Equal(t, report.InvalidLiteral, a.diags[0].Kind)
	assert.Contains(t, a.diags[0].Message, "overflows int64")
}
