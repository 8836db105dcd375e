// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/internal/walker"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the flowguard analysis of a package.
//
// Every function declaration and function literal is analyzed on its own. An internal
// error discards the diagnostics of the affected unit, is reported in its place
// and the analysis continues with the next unit.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("flowguard: %w", r.Err)
	}

	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("flowguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	table, err := r.Table()
	if err != nil {
		return nil, fmt.Errorf("flowguard: %w", err)
	}

	ctx, task := trace.NewTask(context.Background(), "FlowGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	logger := r.logger().With(slog.String("package", p.Pkg.Path()))

	stage := walker.Stage{
		Info:        p.TypesInfo,
		Assertions:  table,
		Annotations: walker.NewAnnotations(p.TypesInfo, p.Files),
		Logger:      logger,
	}

	emit := report.NewEmitter(r.Suppress)
	res := walker.NewResult()

	// Loop over all files
	for f := range in.Root().Children() {
		file, ok := f.Node().(*ast.File)
		if !ok {
			continue
		}

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !r.include(currentFile) {
			continue
		}

		r.analyzeFile(ctx, logger, stage, f, emit, res)

		emit.Flush(p, currentFile)
	}

	return res, nil
}

// include reports whether the diagnostics of a file are wanted.
func (r *Options) include(currentFile astutil.CurrentFile) bool {
	switch {
	case !currentFile.Valid():
		return false

	// Skip generated files
	case currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated):
		return false

	case currentFile.Test() && r.Behavior.Enabled(config.ExcludeTests):
		return false

	// Skip files with nolint comment
	case currentFile.NoLint():
		return false

	default:
		return true
	}
}

func (r *Options) analyzeFile(ctx context.Context, logger *slog.Logger, stage walker.Stage, f inspector.Cursor, emit *report.Emitter, res *walker.Result) {
	types := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
	}

	f.Inspect(types, func(c inspector.Cursor) bool {
		// Skip functions with nolint comment
		if fun, ok := c.Node().(*ast.FuncDecl); ok && astutil.DocHasNoLint(fun.Doc) {
			return false
		}

		unit, ok := walker.NewUnit(stage.Info, c)
		if !ok {
			return true
		}

		mark, unitRes := emit.Len(), walker.NewResult()
		if err := stage.Analyze(ctx, unit, emit, unitRes); err != nil {
			emit.Truncate(mark)
			reportInternal(ctx, logger, emit, c.Node(), err)

			return true
		}

		res.Merge(unitRes)

		return true
	})
}

// reportInternal replaces the diagnostics of a failed unit with the internal error.
func reportInternal(ctx context.Context, logger *slog.Logger, emit *report.Emitter, unit ast.Node, err error) {
	var (
		rng   analysis.Range = unit
		cause                = err
	)

	if ierr := (*astutil.InternalError)(nil); errors.As(err, &ierr) {
		rng, cause = ierr, ierr.Unwrap()
	}

	emit.Report(report.InternalError, rng, cause)

	logger.LogAttrs(ctx, slog.LevelWarn, "Internal error", slog.Any("error", err))
}
