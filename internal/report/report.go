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

package report

import (
	"cmp"
	"errors"
	"go/token"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
)

// ErrUnknownKind is returned when parsing an unknown diagnostic kind.
var ErrUnknownKind = errors.New("unknown diagnostic kind")

// Diagnostic is a finding of the analysis.
type Diagnostic struct {
	Kind     Kind
	Pos, End token.Pos
	Message  string
}

// Severity returns the severity of the diagnostic.
func (d Diagnostic) Severity() Severity { return d.Kind.Severity() }

type key struct {
	pos, end token.Pos
	kind     Kind
}

// Emitter collects the diagnostics of one file.
//
// Each (position, kind) pair is reported at most once, no matter how often the
// analysis revisits a node. An Emitter is used by one traversal at a time.
type Emitter struct {
	suppress    config.BitMask[Kinds]
	seen        map[key]struct{}
	diagnostics []Diagnostic
	muted       int
}

// NewEmitter creates an [Emitter] dropping the kinds in suppress.
func NewEmitter(suppress config.BitMask[Kinds]) *Emitter {
	return &Emitter{
		suppress: suppress,
		seen:     make(map[key]struct{}),
	}
}

// Report records a diagnostic of the given kind, formatting args into the kind's message template.
func (e *Emitter) Report(kind Kind, rng analysis.Range, args ...any) {
	if e.muted > 0 || e.suppress.Enabled(kind.flag()) {
		return
	}

	k := key{pos: rng.Pos(), end: rng.End(), kind: kind}
	if _, ok := e.seen[k]; ok {
		return
	}

	e.seen[k] = struct{}{}
	e.diagnostics = append(e.diagnostics, Diagnostic{
		Kind:    kind,
		Pos:     k.pos,
		End:     k.end,
		Message: kind.message(args...),
	})
}

// Mute suspends reporting until the matching [Emitter.Resume]. Calls nest.
func (e *Emitter) Mute() { e.muted++ }

// Resume ends the innermost [Emitter.Mute].
func (e *Emitter) Resume() { e.muted-- }

// Muted reports whether reporting is currently suspended.
func (e *Emitter) Muted() bool { return e.muted > 0 }

// Len returns the number of diagnostics recorded.
func (e *Emitter) Len() int { return len(e.diagnostics) }

// Truncate discards all diagnostics recorded after the first n.
func (e *Emitter) Truncate(n int) {
	for _, d := range e.diagnostics[n:] {
		delete(e.seen, key{pos: d.Pos, end: d.End, kind: d.Kind})
	}

	e.diagnostics = e.diagnostics[:n]
}

// Diagnostics returns the recorded diagnostics ordered by source position.
func (e *Emitter) Diagnostics() []Diagnostic {
	return slices.SortedStableFunc(slices.Values(e.diagnostics), func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos, b.Pos),
			cmp.Compare(a.End, b.End),
			cmp.Compare(a.Kind, b.Kind),
		)
	})
}

// Flush reports the recorded diagnostics to p in source order and resets the emitter.
//
// Diagnostics on lines with a //nolint:flowguard comment are dropped.
func (e *Emitter) Flush(p *analysis.Pass, file astutil.CurrentFile) {
	for _, d := range e.Diagnostics() {
		if file.NoLintComment(d.Pos) {
			continue
		}

		p.Report(analysis.Diagnostic{
			Pos:      d.Pos,
			End:      d.End,
			Category: d.Kind.Name(),
			Message:  d.Message,
		})
	}

	clear(e.seen)
	e.diagnostics = e.diagnostics[:0]
}
