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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/flowguard/analyzer"
	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.BitMask[config.Behavior]
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.NewBitMask(config.ExcludeTests),
			args:    []string{"-generated"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.NewBitMask(config.IncludeGenerated),
			args:    []string{"-generated=false"},
			want:    false,
		},
		{
			name:    "Keep",
			initial: config.NewBitMask(config.IncludeGenerated),
			args:    nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			flags := tt.initial

			const value = config.IncludeGenerated
			fv := NewBehaviorValue(&flags, value)
			fs.Var(fv, "generated", "check generated files")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("IncludeGenerated enabled = %v, want %v", flags.Enabled(value), tt.want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	flags := config.NewBitMask(config.IncludeGenerated)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBehaviorValue(&flags, config.IncludeGenerated)
	fs.Var(fv, "generated", "check generated files")

	const expectedUsage = `
  -generated
    	check generated files (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestKindsValue(t *testing.T) {
	t.Parallel()

	var kinds config.BitMask[report.Kinds]

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.Var(NewKindsValue(&kinds), "suppress", "suppress kinds")

	require.NoError(t, fs.Parse([]string{"-suppress", "dead,ras", "-suppress=UnnecessaryNullPattern"}))

	assert.True(t, kinds.Enabled(report.KindsOf(report.DeadCode)))
	assert.True(t, kinds.Enabled(report.KindsOf(report.RedundantAssignment)))
	assert.True(t, kinds.Enabled(report.KindsOf(report.UnnecessaryNullPattern)))
	assert.False(t, kinds.Enabled(report.KindsOf(report.NullPointerAccess)))
	assert.Equal(t, "ras,dead,unp", fs.Lookup("suppress").Value.String())

	err := fs.Parse([]string{"-suppress", "bogus"})
	require.ErrorContains(t, err, report.ErrUnknownKind.Error())
}

func TestShapesValue(t *testing.T) {
	t.Parallel()

	var shapes []assertion.Shape

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.Var(NewShapesValue(&shapes), "assert", "assertion shape")

	require.NoError(t, fs.Parse([]string{
		"-assert", "example.com/check.NotNil:0:nonnil",
		"-assert", "(*example.com/check.T).True:1:true",
	}))

	require.Len(t, shapes, 2)
	assert.Equal(t, assertion.NarrowNonNil, shapes[0].Effect)
	assert.Equal(t, 1, shapes[1].Arg)

	err := fs.Parse([]string{"-assert", "no-effect"})
	require.ErrorContains(t, err, assertion.ErrInvalidShape.Error())
}
