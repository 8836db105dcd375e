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

package nullness

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Var indexes a tracked variable in a [FlowState].
type Var int32

// NoVar marks an expression that does not refer to a tracked variable.
const NoVar Var = -1

// Valid reports whether v refers to a tracked variable.
func (v Var) Valid() bool { return v >= 0 }

// ErrInconsistent signals a traversal bug, e.g. joining states of different variable tables.
var ErrInconsistent = errors.New("inconsistent flow state")

const (
	chunkBits = 5
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1
)

type chunk [chunkSize]State

// emptyChunk is shared by all fresh states; chunks are never mutated after construction.
var emptyChunk = &chunk{}

// FlowState is an immutable snapshot of the nullness of every tracked variable
// plus a reachability flag.
//
// States are stored in fixed-size chunks. Derived states copy only the chunk they
// change and share the rest, so branching is cheap.
//
// The zero FlowState is unreachable, has no variables and is the identity of [FlowState.Join].
type FlowState struct {
	chunks    []*chunk
	size      int
	reachable bool
}

// Entry returns a reachable state of size variables, all [Unassigned].
func Entry(size int) FlowState {
	chunks := make([]*chunk, (size+chunkMask)>>chunkBits)
	for i := range chunks {
		chunks[i] = emptyChunk
	}

	return FlowState{chunks: chunks, size: size, reachable: true}
}

// IsZero reports whether s is the zero FlowState.
func (s FlowState) IsZero() bool { return s.size == 0 && !s.reachable }

// Size returns the number of variables in s.
func (s FlowState) Size() int { return s.size }

// Reachable reports whether any control path reaches the program point of s.
func (s FlowState) Reachable() bool { return s.reachable }

// Get returns the state of v.
func (s FlowState) Get(v Var) State {
	s.check(v)

	return s.chunks[v>>chunkBits][v&chunkMask]
}

// Set returns a copy of s with v assigned st.
func (s FlowState) Set(v Var, st State) FlowState {
	s.check(v)

	c := s.chunks[v>>chunkBits]
	if c[v&chunkMask] == st {
		return s
	}

	n := *c
	n[v&chunkMask] = st

	chunks := make([]*chunk, len(s.chunks))
	copy(chunks, s.chunks)
	chunks[v>>chunkBits] = &n

	return FlowState{chunks: chunks, size: s.size, reachable: s.reachable}
}

// Narrow returns a copy of s where v is known to be st, which must be [Nil] or [NonNil].
func (s FlowState) Narrow(v Var, st State) FlowState {
	if !st.Definite() {
		panic(fmt.Errorf("%w: narrowing %d to %s", ErrInconsistent, v, st))
	}

	return s.Set(v, st)
}

// Reset returns a copy of s with every variable in vars assigned st.
func (s FlowState) Reset(st State, vars ...Var) FlowState {
	for _, v := range vars {
		s = s.Set(v, st)
	}

	return s
}

// Widen returns a reachable copy of s with every assigned variable [Unknown].
func (s FlowState) Widen() FlowState {
	w := FlowState{chunks: make([]*chunk, len(s.chunks)), size: s.size, reachable: true}

	for i, c := range s.chunks {
		n := *c
		for j, st := range n {
			if st.Assigned() {
				n[j] = Unknown
			}
		}

		if n == *c {
			w.chunks[i] = c
		} else {
			w.chunks[i] = &n
		}
	}

	return w
}

// MarkUnreachable returns a copy of s that no control path reaches.
func (s FlowState) MarkUnreachable() FlowState {
	s.reachable = false

	return s
}

// Join merges the facts of two control paths.
//
// Unreachable operands contribute nothing; reachability of the result is the
// disjunction of the operands. Joining states of different sizes returns an
// error wrapping [ErrInconsistent].
func (s FlowState) Join(o FlowState) (FlowState, error) {
	switch {
	case s.IsZero():
		return o, nil

	case o.IsZero():
		return s, nil

	case s.size != o.size:
		return FlowState{}, fmt.Errorf("%w: joining %d and %d variables", ErrInconsistent, s.size, o.size)

	case !o.reachable:
		return s, nil

	case !s.reachable:
		return o, nil
	}

	j := FlowState{chunks: make([]*chunk, len(s.chunks)), size: s.size, reachable: true}

	for i, c := range s.chunks {
		d := o.chunks[i]
		if c == d {
			j.chunks[i] = c

			continue
		}

		n := *c
		for k, st := range d {
			n[k] = n[k].Join(st)
		}

		switch n {
		case *c:
			j.chunks[i] = c

		case *d:
			j.chunks[i] = d

		default:
			j.chunks[i] = &n
		}
	}

	return j, nil
}

// Equal reports whether s and o carry the same facts.
//
// All unreachable states are equal.
func (s FlowState) Equal(o FlowState) bool {
	switch {
	case !s.reachable || !o.reachable:
		return !s.reachable && !o.reachable

	case s.size != o.size:
		return false
	}

	for i, c := range s.chunks {
		if d := o.chunks[i]; c != d && *c != *d {
			return false
		}
	}

	return true
}

// All yields every variable of s with its state.
func (s FlowState) All() iter.Seq2[Var, State] {
	return func(yield func(Var, State) bool) {
		for i := range s.size {
			v := Var(i)
			if !yield(v, s.chunks[v>>chunkBits][v&chunkMask]) {
				return
			}
		}
	}
}

func (s FlowState) String() string {
	var b strings.Builder

	if s.reachable {
		b.WriteString("{reachable") // ignore error
	} else {
		b.WriteString("{unreachable") // ignore error
	}

	for v, st := range s.All() {
		if st.Assigned() {
			fmt.Fprintf(&b, " %d:%s", v, st) // ignore error
		}
	}

	b.WriteByte('}') // ignore error

	return b.String()
}

func (s FlowState) check(v Var) {
	if v < 0 || int(v) >= s.size {
		panic(fmt.Errorf("%w: variable %d out of range [0, %d)", ErrInconsistent, v, s.size))
	}
}
