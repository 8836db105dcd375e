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

// Kind classifies a [Frame].
type Kind uint8

//go:generate go tool stringer -type Kind,Edge -linecomment
const (
	// Function is the outermost frame of an analysis unit.
	Function Kind = iota // function

	// Loop is a for or range statement.
	Loop // loop

	// Switch is an expression or type switch statement.
	Switch // switch

	// Select is a select statement.
	Select // select

	// Block is a labeled statement that is not a loop, switch or select.
	Block // block
)

// breakable reports whether an unlabeled break targets frames of this kind.
func (k Kind) breakable() bool {
	return k == Loop || k == Switch || k == Select
}

// Edge is the kind of abrupt control transfer recorded in a [Frame].
type Edge uint8

const (
	// Break leaves a loop, switch or select.
	Break Edge = iota // break

	// Continue starts the next iteration of a loop.
	Continue // continue

	// Return leaves the function normally.
	Return // return

	// Panic leaves the function exceptionally, running deferred calls.
	Panic // panic

	numEdges = iota
)
