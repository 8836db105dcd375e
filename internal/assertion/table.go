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

package assertion

import (
	"go/ast"
	"go/types"
	"maps"
	"slices"
	"strings"

	"golang.org/x/tools/go/types/typeutil"

	"fillmore-labs.com/flowguard/internal/tracker"
)

// Table maps functions to their assertion [Shape].
//
// A Table is built once before analysis starts and only read afterwards, so it
// can be shared by concurrent analyses.
type Table struct {
	shapes map[tracker.FuncName]Shape
}

// NewTable returns a table containing shapes.
func NewTable(shapes ...Shape) *Table {
	t := &Table{shapes: make(map[tracker.FuncName]Shape, len(shapes))}
	t.Add(shapes...)

	return t
}

// Add registers shapes, replacing earlier entries for the same function.
func (t *Table) Add(shapes ...Shape) {
	for _, s := range shapes {
		t.shapes[s.Func] = s
	}
}

// Len returns the number of registered functions.
func (t *Table) Len() int { return len(t.shapes) }

// Shapes returns the registered shapes, sorted by function name.
func (t *Table) Shapes() []Shape {
	return slices.SortedFunc(maps.Values(t.shapes), func(a, b Shape) int {
		return strings.Compare(a.Func.String(), b.Func.String())
	})
}

// Lookup returns the shape of the function called by call.
//
// The result is false when the callee is not registered or the call has no
// argument at the asserted position.
func (t *Table) Lookup(info *types.Info, call *ast.CallExpr) (Shape, bool) {
	if t == nil || len(t.shapes) == 0 {
		return Shape{}, false
	}

	fun, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok {
		return Shape{}, false
	}

	s, ok := t.shapes[tracker.FuncNameOf(fun)]
	if !ok || s.Arg >= len(call.Args) || call.Ellipsis.IsValid() && s.Arg >= len(call.Args)-1 {
		return Shape{}, false
	}

	return s, true
}
