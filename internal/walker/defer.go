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

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
)

func (f *flow) deferStmt(s *ast.DeferStmt, st nullness.FlowState) nullness.FlowState {
	return f.deferredCall(s.Call, st)
}

func (f *flow) goStmt(s *ast.GoStmt, st nullness.FlowState) nullness.FlowState {
	return f.deferredCall(s.Call, st)
}

// deferredCall evaluates the function value and arguments of a deferred or asynchronous call.
//
// The call itself happens later; deferred function literals are analyzed at function exit.
func (f *flow) deferredCall(call *ast.CallExpr, st nullness.FlowState) nullness.FlowState {
	if tv := f.Info.Types[call.Fun]; !tv.IsType() && !tv.IsBuiltin() {
		fun := f.eval(call.Fun, st)

		st = fun.out
		if f.tracker.Callee(call) == nil {
			st = f.deref(st, fun, call.Fun)
		}
	}

	_, st = f.evalList(f.valueArgs(call), st)

	return st
}

// deferred analyzes the deferred function literals of body in the order they run,
// starting with all states leaving body, and returns the state after the last one.
//
// Closures deferred inside a deferred closure run when that closure returns.
func (f *flow) deferred(body *ast.BlockStmt, end nullness.FlowState, fn flowctx.Frame) nullness.FlowState {
	st := f.join(body, end, fn.Exit(flowctx.Return))
	st = f.join(body, st, fn.Exit(flowctx.Panic))

	defers := f.defers[body]
	for i := len(defers) - 1; i >= 0; i-- {
		lit := defers[i]

		in := st
		for id := range astutil.FieldIdents(lit.Type.Params) {
			if r := f.defined(id); r.Valid() {
				in = f.store(in, r, nullness.Unknown)
			}
		}

		saved := f.results

		f.results = f.namedResults(lit.Type.Results)
		for _, r := range f.results {
			if r.Valid() {
				in = f.storeZero(in, r)
			}
		}

		f.stack.Push(flowctx.Function, "")
		out := f.block(lit.Body, in)
		fr := f.stack.Pop()

		st = f.deferred(lit.Body, out, fr)

		f.results = saved
	}

	return st
}
