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

package tracker_test

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	. "fillmore-labs.com/flowguard/internal/tracker"
)

func TestCantReturn(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	testAnalyzer := &analysis.Analyzer{
		Name:     "cantreturnanalyzer",
		Doc:      "test cantreturn",
		Run:      crrun,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	analysistest.Run(t, testdata, testAnalyzer, "./cantreturn")
}

func crrun(p *analysis.Pass) (any, error) {
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("result of %s missing", inspect.Analyzer.Name)
	}

	tr := New(p.TypesInfo)

	for c := range in.Root().Preorder((*ast.ExprStmt)(nil)) {
		call, ok := c.Node().(*ast.ExprStmt).X.(*ast.CallExpr)
		if !ok || !tr.CantReturn(call) {
			continue
		}

		p.Report(analysis.Diagnostic{
			Pos:     call.Pos(),
			End:     call.End(),
			Message: "Can't return",
		})
	}

	return any(nil), nil
}

func TestNoReturnThirdParty(t *testing.T) {
	t.Parallel()

	method := func(path, recv, name string, pointer bool) *types.Func {
		pkg := types.NewPackage(path, "p")
		tn := types.NewTypeName(token.NoPos, pkg, recv, nil)
		var rt types.Type = types.NewNamed(tn, types.NewStruct(nil, nil), nil)

		if pointer {
			rt = types.NewPointer(rt)
		}

		sig := types.NewSignatureType(types.NewParam(token.NoPos, pkg, "", rt), nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, pkg, name, sig)
	}

	function := func(path, name string) *types.Func {
		pkg := types.NewPackage(path, "p")
		sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, pkg, name, sig)
	}

	tests := [...]struct {
		name string
		fun  *types.Func
		want bool
	}{
		{"zap", method("go.uber.org/zap", "Logger", "Fatal", true), true},
		{"zap_info", method("go.uber.org/zap", "Logger", "Info", true), false},
		{"sugared", method("go.uber.org/zap", "SugaredLogger", "Panicw", true), true},
		{"logrus_entry", method("github.com/sirupsen/logrus", "Entry", "Panicf", true), true},
		{"klog", function("k8s.io/klog/v2", "Exitf"), true},
		{"klog_info", function("k8s.io/klog/v2", "Info"), false},
		{"os", function("os", "Exit"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NoReturn(tt.fun); got != tt.want {
				t.Errorf("NoReturn(%s) = %t, want %t", FuncNameOf(tt.fun), got, tt.want)
			}
		})
	}
}
