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
	"iter"
	"strings"

	"fillmore-labs.com/flowguard/internal/nullness"
)

const directivePrefix = "//flowguard:"

// resultsName addresses all results of a function in a directive.
const resultsName = "return"

// Annotations holds the declared nullability of the functions and struct fields of a package.
//
// Functions are annotated in their doc comment:
//
//	//flowguard:nonnil p q
//	//flowguard:nilable return
//
// names parameters and named results, "return" denotes all results. Struct fields
// carry a bare directive in their doc or line comment.
type Annotations struct {
	funcs  map[*types.Func]map[string]nullness.State
	fields map[*types.Var]nullness.State
}

// NewAnnotations collects the nullability directives of the package-level declarations in files.
func NewAnnotations(info *types.Info, files []*ast.File) Annotations {
	a := Annotations{
		funcs:  make(map[*types.Func]map[string]nullness.State),
		fields: make(map[*types.Var]nullness.State),
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				a.addFunc(info, d)

			case *ast.GenDecl:
				if d.Tok == token.TYPE {
					a.addTypes(info, d)
				}
			}
		}
	}

	return a
}

func (a Annotations) addFunc(info *types.Info, decl *ast.FuncDecl) {
	fun, ok := info.Defs[decl.Name].(*types.Func)
	if !ok || decl.Doc == nil {
		return
	}

	names := make(map[string]nullness.State)

	for st, args := range directives(decl.Doc) {
		for _, name := range strings.Fields(args) {
			names[name] = st
		}
	}

	if len(names) > 0 {
		a.funcs[fun] = names
	}
}

func (a Annotations) addTypes(info *types.Info, decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		tspec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		str, ok := tspec.Type.(*ast.StructType)
		if !ok {
			continue
		}

		for _, field := range str.Fields.List {
			st, ok := fieldDirective(field)
			if !ok {
				continue
			}

			for _, name := range field.Names {
				if v, ok := info.Defs[name].(*types.Var); ok {
					a.fields[v] = st
				}
			}
		}
	}
}

func fieldDirective(field *ast.Field) (nullness.State, bool) {
	for _, doc := range [...]*ast.CommentGroup{field.Doc, field.Comment} {
		for st := range directives(doc) {
			return st, true
		}
	}

	return nullness.Unassigned, false
}

// directives yields the state and the arguments of all nullability directives in doc.
func directives(doc *ast.CommentGroup) iter.Seq2[nullness.State, string] {
	return func(yield func(nullness.State, string) bool) {
		if doc == nil {
			return
		}

		for _, c := range doc.List {
			text, ok := strings.CutPrefix(c.Text, directivePrefix)
			if !ok {
				continue
			}

			verb, args, _ := strings.Cut(text, " ")

			var st nullness.State

			switch verb {
			case "nonnil":
				st = nullness.NonNil

			case "nilable":
				st = nullness.MaybeNil

			default:
				continue
			}

			if !yield(st, args) {
				return
			}
		}
	}
}

// Param returns the declared nullability of the parameter or named result v of fun.
func (a Annotations) Param(fun *types.Func, v *types.Var) (nullness.State, bool) {
	if fun == nil || v == nil {
		return nullness.Unassigned, false
	}

	st, ok := a.funcs[fun][v.Name()]

	return st, ok
}

// Result returns the declared nullability of the i-th result of fun, or [nullness.Unknown].
func (a Annotations) Result(fun *types.Func, i int) nullness.State {
	names, ok := a.funcs[fun]
	if !ok {
		return nullness.Unknown
	}

	results := fun.Signature().Results()
	if i >= results.Len() || !nillable(results.At(i).Type()) {
		return nullness.Unknown
	}

	if name := results.At(i).Name(); name != "" {
		if st, ok := names[name]; ok {
			return st
		}
	}

	if st, ok := names[resultsName]; ok {
		return st
	}

	return nullness.Unknown
}

// Field returns the declared nullability of the struct field v.
func (a Annotations) Field(v *types.Var) (nullness.State, bool) {
	st, ok := a.fields[v]

	return st, ok
}
