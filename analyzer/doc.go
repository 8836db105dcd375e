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

// Package analyzer implements the flowguard static analysis pass.
//
// # Overview
//
// FlowGuard follows the nullness of local variables and fields through the
// control flow of every function and reports:
//
//   - dereferences of values that are nil on every or on some path (npe, pnpe)
//   - nil comparisons with a known outcome (rnc, ncf)
//   - assignments of a variable to itself (ras)
//   - statements no control path reaches (dead)
//   - case nil clauses in type switches over non-nil values (unp)
//   - numeric literals overflowing their type (lit)
//
// # Example
//
//	func first(l *List) int {
//	    if l == nil {
//	        fmt.Println("empty")
//	    }
//	    return l.head  // Potential nil pointer access: l may be nil at this location
//	}
//
// # Assertions
//
// Calls to known assertion functions narrow their argument on the path where
// the call returns. The testify assert and require packages are recognized by
// default; more can be added with the -assert flag or a YAML file given to
// -assertions:
//
//	assertions:
//	  - func: example.com/check.NotNil
//	    arg: 0
//	    effect: nonnil
//
// # Suppression
//
// Diagnostic kinds are suppressed with -suppress, a line with
// //nolint:flowguard drops its diagnostics and a function or file with such a
// doc comment is skipped.
package analyzer
