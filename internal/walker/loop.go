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

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
)

// loop analyzes a loop to its fixpoint and returns the frame of the reporting pass with the stable loop head.
//
// Diagnostics are only emitted in the reporting pass.
func (f *flow) loop(s ast.Stmt, label string, entry nullness.FlowState, body func(head nullness.FlowState) nullness.FlowState) (flowctx.Frame, nullness.FlowState) {
	fr, head, err := f.stack.Loop(f.ctx, f.logger, label, entry, func(head nullness.FlowState, final bool) (nullness.FlowState, error) {
		if !final {
			f.emit.Mute()
			defer f.emit.Resume()
		}

		return body(head), nil
	})
	if err != nil {
		panic(astutil.WrapInternal(s, err))
	}

	return fr, head
}

// continued joins the continue states of the innermost loop into the state at the end of its body.
func (f *flow) continued(s ast.Stmt, end nullness.FlowState) nullness.FlowState {
	return f.join(s, end, f.stack.Pending(flowctx.Continue))
}

func (f *flow) forStmt(s *ast.ForStmt, label string, st nullness.FlowState) nullness.FlowState {
	if s.Init != nil {
		st = f.stmt(s.Init, st)
	}

	exit := st.MarkUnreachable()

	fr, _ := f.loop(s, label, st, func(head nullness.FlowState) nullness.FlowState {
		in := head
		if s.Cond != nil {
			c := f.eval(s.Cond, head)
			if c.out.Reachable() && !c.whenTrue.Reachable() && len(s.Body.List) > 0 {
				f.dead(s.Body)
			}

			in, exit = c.whenTrue, c.whenFalse
		}

		end := f.continued(s, f.block(s.Body, in))
		if s.Post != nil {
			end = f.stmt(s.Post, end)
		}

		return end
	})

	return f.join(s, exit, fr.Exit(flowctx.Break))
}

func (f *flow) rangeStmt(s *ast.RangeStmt, label string, st nullness.FlowState) nullness.FlowState {
	x := f.eval(s.X, st)

	st = x.out
	if xt := f.Info.TypeOf(s.X); s.Value != nil && isPointerToArray(xt) || isSignature(xt) {
		st = f.deref(st, x, s.X)
	}

	fr, head := f.loop(s, label, st, func(head nullness.FlowState) nullness.FlowState {
		in := head
		if s.Tok != token.ILLEGAL {
			for _, e := range [...]ast.Expr{s.Key, s.Value} {
				if e == nil {
					continue
				}

				var r nullness.Var
				r, in = f.target(e, in)
				in = f.killGuard(e, in)

				if r.Valid() {
					in = f.store(in, r, nullness.Unknown)
				}
			}
		}

		return f.continued(s, f.block(s.Body, in))
	})

	return f.join(s, head, fr.Exit(flowctx.Break))
}
