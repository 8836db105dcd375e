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

package constant

// Conditional folds cond ? then : els.
//
// A boolean cond selects the matching arm, including its absence of a value.
// Otherwise the result is constant only when both arms are boolean constants
// with the same value.
func Conditional(cond, then, els Constant) Constant {
	if cond.kind == Bool {
		if cond.BoolValue() {
			return then
		}

		return els
	}

	if then.kind == Bool && then.SameValue(els) {
		return then
	}

	return NotAConstant
}

// And folds a && b.
func And(a, b Constant) Constant { return Conditional(a, b, MakeBool(false)) }

// Or folds a || b.
func Or(a, b Constant) Constant { return Conditional(a, MakeBool(true), b) }

// Not folds !c.
func Not(c Constant) Constant {
	if c.kind != Bool {
		return NotAConstant
	}

	return MakeBool(!c.BoolValue())
}

// IsTrue reports whether c is the boolean constant true.
func IsTrue(c Constant) bool { return c.kind == Bool && c.bits != 0 }

// IsFalse reports whether c is the boolean constant false.
func IsFalse(c Constant) bool { return c.kind == Bool && c.bits == 0 }
