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

package flowctx

import (
	"context"
	"log/slog"

	"fillmore-labs.com/flowguard/internal/nullness"
)

// MinPasses is the number of analysis passes over a loop body before the reporting pass.
//
// A narrowing established in one pass has to survive the following back-edge before
// it is trusted.
const MinPasses = 2

// MaxPasses returns the number of passes after which a loop with vars tracked
// variables is widened instead of iterated further.
func MaxPasses(vars int) int { return 3*vars + 2 }

// Body analyzes one iteration of a loop starting at head and returns the state
// flowing back to the loop head. final is set for the reporting pass only.
//
// Body runs inside a [Loop] frame; breaks and continues of the iteration are
// recorded there, and back includes the [Stack.Pending] continue states.
type Body func(head nullness.FlowState, final bool) (back nullness.FlowState, err error)

// Loop computes the fixpoint of a loop.
//
// The body is analyzed starting with entry, its back-edge state joined into the
// loop head and the analysis repeated until the head is stable, but at least
// [MinPasses] times. When the head does not stabilize within [MaxPasses] passes
// all variables are widened to [nullness.Unknown]. A final reporting pass runs on
// the stable head.
//
// Loop returns the frame of the reporting pass and the stable head.
func (s *Stack) Loop(ctx context.Context, logger *slog.Logger, label string, entry nullness.FlowState, body Body) (Frame, nullness.FlowState, error) {
	head := entry

	for pass, limit := 1, MaxPasses(entry.Size()); head.Reachable(); pass++ {
		if pass > limit {
			logger.LogAttrs(ctx, slog.LevelDebug, "Loop fixpoint widened",
				slog.String("label", label), slog.Int("passes", limit))

			head = head.Widen()

			break
		}

		_, back, err := s.iterate(label, head, body, false)
		if err != nil {
			return Frame{}, head, err
		}

		next, err := head.Join(back)
		if err != nil {
			return Frame{}, head, err
		}

		if pass >= MinPasses && next.Equal(head) {
			break
		}

		head = next
	}

	f, _, err := s.iterate(label, head, body, true)

	return f, head, err
}

func (s *Stack) iterate(label string, head nullness.FlowState, body Body, final bool) (Frame, nullness.FlowState, error) {
	s.Push(Loop, label)

	back, err := body(head, final)

	f := s.Pop()

	return f, back, err
}
