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

package assertion

import "fillmore-labs.com/flowguard/internal/tracker"

const (
	testifyRequire = "github.com/stretchr/testify/require"
	testifyAssert  = "github.com/stretchr/testify/assert"
	gotestAssert   = "gotest.tools/v3/assert"
)

// testifyShapes are the testify assertions with a flow effect when they return.
var testifyShapes = [...]struct {
	name   string
	effect Effect
}{
	{"NotNil", NarrowNonNil},
	{"Nil", NarrowNil},
	{"True", NarrowTrue},
	{"False", NarrowFalse},
	{"NoError", NarrowNil},
	{"Error", NarrowNonNil},
	{"ErrorAs", NarrowNonNil},
	{"ErrorContains", NarrowNonNil},
	{"EqualError", NarrowNonNil},
}

// Default returns a table with the assertion libraries known out of the box.
//
// testify's require package stops the test when an assertion fails, so
// assertions narrow the flow state after the call. testify's assert package
// reports failures through its result and is registered without effect.
func Default() *Table {
	t := NewTable()

	for _, s := range testifyShapes {
		for _, name := range [...]string{s.name, s.name + "f"} {
			t.Add(
				Shape{Func: tracker.FuncName{Path: testifyRequire, Name: name}, Arg: 1, Effect: s.effect},
				Shape{Func: tracker.FuncName{Path: testifyRequire, Receiver: "Assertions", Name: name}, Arg: 0, Effect: s.effect},
				Shape{Func: tracker.FuncName{Path: testifyAssert, Name: name}, Arg: 1, Effect: NoEffect},
				Shape{Func: tracker.FuncName{Path: testifyAssert, Receiver: "Assertions", Name: name}, Arg: 0, Effect: NoEffect},
			)
		}
	}

	t.Add(
		Shape{Func: tracker.FuncName{Path: gotestAssert, Name: "Assert"}, Arg: 1, Effect: NarrowTrue},
		Shape{Func: tracker.FuncName{Path: gotestAssert, Name: "NilError"}, Arg: 1, Effect: NarrowNil},
		Shape{Func: tracker.FuncName{Path: gotestAssert, Name: "ErrorContains"}, Arg: 1, Effect: NarrowNonNil},
		Shape{Func: tracker.FuncName{Path: gotestAssert, Name: "Check"}, Arg: 1, Effect: NoEffect},
	)

	return t
}
