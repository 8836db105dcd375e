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

package astutil_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/testsource"
)

func names(seq iter.Seq[*ast.Ident]) []string {
	var r []string
	for id := range seq {
		r = append(r, id.Name)
	}

	return r
}

func TestDeclaredIdents(t *testing.T) {
	t.Parallel()

	_, _, fn, _ := testsource.Parse(t, `
	var a, _, b int
	var (
		c    = 1
		_, d = 2, 3
	)
	const e = 4
	_, _, _, _ = a, b, c, d
`)

	body := fn.Body.List

	var declared []string
	for id, vs := range DeclaredIdents(body[0].(*ast.DeclStmt).Decl.(*ast.GenDecl)) {
		declared = append(declared, id.Name)
		assert.Empty(t, vs.Values)
	}

	assert.Equal(t, []string{"a", "b"}, declared)

	declared = nil
	for id := range DeclaredIdents(body[1].(*ast.DeclStmt).Decl.(*ast.GenDecl)) {
		declared = append(declared, id.Name)
	}

	assert.Equal(t, []string{"c", "d"}, declared)

	for range DeclaredIdents(body[2].(*ast.DeclStmt).Decl.(*ast.GenDecl)) {
		t.Error("Constants are not variables")
	}
}

func TestFieldIdents(t *testing.T) {
	t.Parallel()

	_, f := testsource.ParseFile(t, "package test\n\nfunc f(a, _ int, b string) (c error) { return nil }\n")
	fn := f.Decls[0].(*ast.FuncDecl)

	assert.Equal(t, []string{"a", "b"}, names(FieldIdents(fn.Type.Params)))
	assert.Equal(t, []string{"c"}, names(FieldIdents(fn.Type.Results)))
	assert.Empty(t, names(FieldIdents(nil)))
}

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		want bool
	}{
		{"//nolint:flowguard", true},
		{"// nolint:errcheck,FlowGuard", true},
		{"//nolint:all", true},
		{"//nolint:scopeguard", false},
		{"// flowguard", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CommentHasNoLint(&ast.Comment{Text: tt.text}), "comment %q", tt.text)
	}
}

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	const src = `// Code generated by hand. DO NOT EDIT.

//nolint:flowguard
package test

var x = 1 //nolint:flowguard
var y = 2
`

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "gen_test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c := NewCurrentFile(fset, f)

	assert.True(t, c.Valid())
	assert.True(t, c.Generated())
	assert.True(t, c.Test())
	assert.True(t, c.NoLint())
	assert.Equal(t, "gen_test.go", c.Name())

	x, y := f.Decls[0].Pos(), f.Decls[1].Pos()
	assert.True(t, c.NoLintComment(x))
	assert.False(t, c.NoLintComment(y))

	assert.False(t, NewCurrentFile(fset, nil).Valid())
	assert.False(t, DocHasNoLint(nil))
}
