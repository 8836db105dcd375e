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
	"context"
	"errors"
	"go/ast"
	"go/types"
	"log/slog"
	"maps"
	"runtime"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/constant"
	"fillmore-labs.com/flowguard/internal/flowctx"
	"fillmore-labs.com/flowguard/internal/nullness"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/internal/tracker"
)

// Stage configures and runs the flow analysis of function bodies of one package.
//
// A Stage is read-only during analysis and can be shared by concurrent traversals.
type Stage struct {
	Info        *types.Info
	Assertions  *assertion.Table
	Annotations Annotations
	Logger      *slog.Logger
}

// Unit is a function body analyzed on its own.
type Unit struct {
	Body inspector.Cursor // the *ast.BlockStmt of the function
	Recv *ast.FieldList
	Type *ast.FuncType
	Func *types.Func // nil for function literals
}

// NewUnit returns the [Unit] of a function declaration or literal at c.
//
// The result is false for declarations without body and for deferred closures,
// which are analyzed as part of their enclosing function.
func NewUnit(info *types.Info, c inspector.Cursor) (Unit, bool) {
	switch n := c.Node().(type) {
	case *ast.FuncDecl:
		if n.Body == nil {
			return Unit{}, false
		}

		fun, _ := info.Defs[n.Name].(*types.Func)

		return Unit{Body: c.ChildAt(edge.FuncDecl_Body, -1), Recv: n.Recv, Type: n.Type, Func: fun}, true

	case *ast.FuncLit:
		if deferredClosure(c) {
			return Unit{}, false
		}

		return Unit{Body: c.ChildAt(edge.FuncLit_Body, -1), Type: n.Type}, true

	default:
		return Unit{}, false
	}
}

// Result holds the constant annotations of the analyzed expressions.
type Result struct {
	// Constants are the compile-time constant values of maximal constant expressions.
	Constants map[ast.Expr]constant.Constant

	// Optimized are boolean expressions without compile-time value that
	// the flow analysis proved to always yield the same value.
	Optimized map[ast.Expr]constant.Constant
}

// NewResult creates an empty [Result].
func NewResult() *Result {
	return &Result{
		Constants: make(map[ast.Expr]constant.Constant),
		Optimized: make(map[ast.Expr]constant.Constant),
	}
}

// Merge adds the entries of o to r.
func (r *Result) Merge(o *Result) {
	maps.Copy(r.Constants, o.Constants)
	maps.Copy(r.Optimized, o.Optimized)
}

// Analyze runs the flow analysis of unit, reporting findings to emit and recording constants in res.
//
// An inconsistency of the analysis aborts the unit and returns an *[astutil.InternalError].
func (s Stage) Analyze(ctx context.Context, unit Unit, emit *report.Emitter, res *Result) (err error) {
	defer trace.StartRegion(ctx, "Flow").End()

	body, ok := unit.Body.Node().(*ast.BlockStmt)
	if !ok {
		return astutil.Internalf(unit.Body.Node(), "unit without body")
	}

	defer func() {
		if r := recover(); r != nil {
			err = internalError(body, r)
		}
	}()

	f := s.newFlow(ctx, emit, res)
	f.prescan(unit)
	f.analyze(unit, body)

	return nil
}

// internalError converts a panic of the analysis into an error, re-panicking on foreign values.
func internalError(rng analysis.Range, r any) error {
	err, ok := r.(error)
	if !ok {
		panic(r)
	}

	var (
		ierr *astutil.InternalError
		rerr runtime.Error
	)

	switch {
	case errors.As(err, &ierr):
		return ierr

	case errors.Is(err, nullness.ErrInconsistent), errors.Is(err, flowctx.ErrNoTarget), errors.As(err, &rerr):
		return astutil.WrapInternal(rng, err)

	default:
		panic(r)
	}
}

func (s Stage) newFlow(ctx context.Context, emit *report.Emitter, res *Result) *flow {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &flow{
		Stage:   s,
		ctx:     ctx,
		logger:  logger,
		tracker: tracker.New(s.Info),
		emit:    emit,
		result:  res,
		refs:    newRefTable(),
		guardAt: make(map[*ast.AssignStmt]int),
	}
}
