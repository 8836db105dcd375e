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

package nullness_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/flowguard/internal/nullness"
)

func randomState(r *rand.Rand, size int) FlowState {
	s := Entry(size)
	for v := range size {
		s = s.Set(Var(v), allStates[r.IntN(len(allStates))])
	}

	if r.IntN(8) == 0 {
		s = s.MarkUnreachable()
	}

	return s
}

func mustJoin(t *testing.T, a, b FlowState) FlowState {
	t.Helper()

	j, err := a.Join(b)
	require.NoError(t, err)

	return j
}

func TestFlowStateJoinLaws(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	for _, size := range []int{1, 7, 32, 33, 100} {
		for range 50 {
			a, b, c := randomState(r, size), randomState(r, size), randomState(r, size)

			assert.True(t, mustJoin(t, a, b).Equal(mustJoin(t, b, a)), "commutativity of %v and %v", a, b)
			assert.True(t, mustJoin(t, a, a).Equal(a), "idempotence of %v", a)
			assert.True(t, mustJoin(t, mustJoin(t, a, b), c).Equal(mustJoin(t, a, mustJoin(t, b, c))), "associativity")
			assert.Equal(t, a.Reachable() || b.Reachable(), mustJoin(t, a, b).Reachable())
		}
	}
}

func TestFlowStateJoinBranches(t *testing.T) {
	t.Parallel()

	const x Var = 0

	entry := Entry(1).Set(x, Unknown)
	then := entry.Narrow(x, NonNil)
	els := entry.Narrow(x, Nil)

	j := mustJoin(t, then, els)
	assert.Equal(t, MaybeNil, j.Get(x))
	assert.True(t, j.Reachable())

	j = mustJoin(t, then, els.MarkUnreachable())
	assert.Equal(t, NonNil, j.Get(x), "unreachable branches contribute nothing")

	j = mustJoin(t, then.MarkUnreachable(), els.MarkUnreachable())
	assert.False(t, j.Reachable())
}

func TestFlowStateIdentity(t *testing.T) {
	t.Parallel()

	s := Entry(40).Set(3, NonNil).Set(35, Nil)

	assert.True(t, mustJoin(t, FlowState{}, s).Equal(s))
	assert.True(t, mustJoin(t, s, FlowState{}).Equal(s))
	assert.True(t, FlowState{}.IsZero())
	assert.False(t, Entry(0).IsZero())
}

func TestFlowStateIncompatible(t *testing.T) {
	t.Parallel()

	_, err := Entry(2).Join(Entry(3))
	require.ErrorIs(t, err, ErrInconsistent)

	assert.PanicsWithError(t, "inconsistent flow state: variable 2 out of range [0, 2)", func() { Entry(2).Get(2) })
	assert.Panics(t, func() { Entry(2).Narrow(0, MaybeNil) })
}

func TestFlowStateImmutable(t *testing.T) {
	t.Parallel()

	orig := Entry(64).Set(1, Unknown)
	derived := orig.Set(1, NonNil).Set(40, Nil)

	assert.Equal(t, Unknown, orig.Get(1))
	assert.Equal(t, Unassigned, orig.Get(40))
	assert.Equal(t, NonNil, derived.Get(1))
	assert.Equal(t, Nil, derived.Get(40))

	same := orig.Set(1, Unknown)
	assert.True(t, same.Equal(orig))
}

func TestFlowStateWiden(t *testing.T) {
	t.Parallel()

	s := Entry(3).Set(0, Nil).Set(1, NonNil).MarkUnreachable()
	w := s.Widen()

	assert.True(t, w.Reachable())
	assert.Equal(t, Unknown, w.Get(0))
	assert.Equal(t, Unknown, w.Get(1))
	assert.Equal(t, Unassigned, w.Get(2))

	r := Entry(3).Reset(MaybeNil, 0, 2)
	assert.Equal(t, MaybeNil, r.Get(0))
	assert.Equal(t, Unassigned, r.Get(1))
	assert.Equal(t, MaybeNil, r.Get(2))
}

func TestFlowStateString(t *testing.T) {
	t.Parallel()

	s := Entry(3).Set(0, Nil).Set(2, MaybeNonNil)
	assert.Equal(t, "{reachable 0:nil 2:maybe-nonnil}", s.String())
	assert.Equal(t, "{unreachable}", FlowState{}.String())
}
