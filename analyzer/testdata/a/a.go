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

package a

import "fmt"

type List struct {
	head int
	next *List
}

func first(l *List) int {
	if l == nil {
		fmt.Println("empty")
	}

	return l.head // want "Potential nil pointer access: The variable l may be nil at this location"
}

func empty() int {
	var l *List

	return l.head // want "Nil pointer access: The variable l can only be nil at this location \\(fg:npe\\)"
}

func checked(l *List) int {
	if l == nil {
		return 0
	}

	return l.head
}

func redundant() {
	l := &List{}
	if l != nil { // want "Redundant nil check: The variable l cannot be nil at this location"
		fmt.Println(l.head)
	}
}

func alwaysFalse() {
	var l *List
	if l != nil { // want "fg:ncf" "Dead code"
		fmt.Println(l.head)
	}
}

func shortCircuit(l *List) bool {
	return l != nil && l.head > 0
}

func last(ls []*List) int {
	var found *List
	for _, l := range ls {
		if l != nil {
			found = l
			break
		}
	}

	return found.head // want "fg:pnpe"
}

func unreachable() {
	panic("unreachable")
	fmt.Println() // want "fg:dead"
	fmt.Println()
}

func self(l *List) {
	l = l // want "The assignment to l has no effect"
	_ = l
}

func kind() {
	var x any = 1
	switch x.(type) {
	case nil: // want "fg:unp"
	case int:
	}
}

func silenced() int {
	var l *List

	return l.head //nolint:flowguard
}

//nolint:flowguard
func skipped() int {
	var l *List

	return l.head
}

//flowguard:nilable return
func find() *List { return nil }

func annotated() int {
	return find().head // want "fg:pnpe"
}

func closure() func() int {
	return func() int {
		var l *List

		return l.head // want "fg:npe"
	}
}
