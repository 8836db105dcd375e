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
	"errors"
	"fmt"

	"fillmore-labs.com/flowguard/internal/nullness"
)

// ErrNoTarget is returned when a control transfer has no enclosing frame to go to.
var ErrNoTarget = errors.New("no target frame")

// Frame collects the states leaving one enclosing construct through abrupt control transfers.
type Frame struct {
	Kind  Kind
	Label string

	exits [numEdges]nullness.FlowState
}

// Exit returns the join of all states recorded for edge.
//
// The result is the zero [nullness.FlowState] when no reachable state left through edge.
func (f *Frame) Exit(edge Edge) nullness.FlowState {
	return f.exits[edge]
}

func (f *Frame) record(edge Edge, st nullness.FlowState) error {
	j, err := f.exits[edge].Join(st)
	if err != nil {
		return fmt.Errorf("%s exit of %s: %w", edge, f.Kind, err)
	}

	f.exits[edge] = j

	return nil
}

// Stack is the stack of constructs enclosing the statement being analyzed.
//
// A Stack is owned by a single traversal.
type Stack struct {
	frames []*Frame
}

// Len returns the number of frames on the stack.
func (s *Stack) Len() int { return len(s.frames) }

// Push enters a construct of the given kind. label is empty for unlabeled statements.
func (s *Stack) Push(kind Kind, label string) {
	s.frames = append(s.frames, &Frame{Kind: kind, Label: label})
}

// Pop leaves the innermost construct and returns its frame with the merged exit states.
func (s *Stack) Pop() Frame {
	n := len(s.frames) - 1
	f := s.frames[n]
	s.frames[n] = nil
	s.frames = s.frames[:n]

	return *f
}

// Pending returns the state recorded so far for edge in the innermost frame.
func (s *Stack) Pending(edge Edge) nullness.FlowState {
	if len(s.frames) == 0 {
		return nullness.FlowState{}
	}

	return s.frames[len(s.frames)-1].exits[edge]
}

// RecordExit merges st into the frame that edge transfers control to.
//
// Unlabeled breaks go to the innermost loop, switch or select, unlabeled continues to the
// innermost loop and labeled transfers to the frame carrying label. Returns and panics go
// to the innermost function frame.
func (s *Stack) RecordExit(edge Edge, label string, st nullness.FlowState) error {
	f, err := s.target(edge, label)
	if err != nil {
		return err
	}

	if !st.Reachable() {
		return nil
	}

	return f.record(edge, st)
}

func (s *Stack) target(edge Edge, label string) (*Frame, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]

		switch edge {
		case Return, Panic:
			if f.Kind == Function {
				return f, nil
			}

			continue
		}

		if f.Kind == Function {
			break
		}

		switch {
		case label != "":
			if f.Label != label {
				continue
			}

			if edge == Continue && f.Kind != Loop {
				return nil, fmt.Errorf("%w: continue %s of %s", ErrNoTarget, label, f.Kind)
			}

			return f, nil

		case edge == Continue && f.Kind == Loop,
			edge == Break && f.Kind.breakable():
			return f, nil
		}
	}

	if label != "" {
		return nil, fmt.Errorf("%w: %s %s", ErrNoTarget, edge, label)
	}

	return nil, fmt.Errorf("%w: %s", ErrNoTarget, edge)
}
