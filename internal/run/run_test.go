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

package run_test

import (
	"errors"
	"go/ast"
	"go/token"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
	. "fillmore-labs.com/flowguard/internal/run"
)

func TestReportInternal(t *testing.T) {
	t.Parallel()

	unit := &ast.BlockStmt{Lbrace: token.Pos(10), Rbrace: token.Pos(50)}
	inner := &ast.Ident{NamePos: token.Pos(20), Name: "x"}

	tests := [...]struct {
		name     string
		err      error
		pos, end token.Pos
	}{
		{"internal", astutil.Internalf(inner, "broken %s", "join"), inner.Pos(), inner.End()},
		{"other", errors.New("unexpected"), unit.Pos(), unit.End()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			emit := report.NewEmitter(config.BitMask[report.Kinds]{})
			ReportInternal(t.Context(), slog.New(slog.DiscardHandler), emit, unit, tt.err)

			diags := emit.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, report.InternalError, diags[0].Kind)
			assert.Equal(t, tt.pos, diags[0].Pos)
			assert.Equal(t, tt.end, diags[0].End)
			assert.NotContains(t, diags[0].Message, "internal error: ", "the cause is reported unwrapped")
		})
	}
}
