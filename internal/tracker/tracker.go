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

// Package tracker identifies functions by name and knows which calls end a control path.
package tracker

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// Tracker resolves the callees of call expressions of one package.
type Tracker struct {
	info *types.Info // Type information for resolving callees
}

// New creates and returns a new Tracker.
func New(info *types.Info) Tracker {
	return Tracker{
		info: info,
	}
}

// CantReturn determines if the given function call expression represents a function that cannot return.
func (t Tracker) CantReturn(call *ast.CallExpr) bool {
	return CantReturn(t.info, call)
}

// StaticCallee returns the function or concrete method called by call, or nil for
// dynamic calls, builtins and conversions.
func (t Tracker) StaticCallee(call *ast.CallExpr) *types.Func {
	return typeutil.StaticCallee(t.info, call)
}

// Callee returns the named function, method or interface method called by call, or nil.
func (t Tracker) Callee(call *ast.CallExpr) *types.Func {
	fun, _ := typeutil.Callee(t.info, call).(*types.Func)

	return fun
}
