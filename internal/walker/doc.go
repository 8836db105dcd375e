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

// Package walker implements the flow-sensitive analysis of function bodies.
//
// A [Stage] walks one [Unit] at a time, tracking the nullness of local variables
// and the field selector chains rooted at them. Expressions are evaluated with an
// explicit work stack; boolean expressions produce separate states for their true
// and false outcome, so conditions narrow the variables they test. Loops are
// iterated to a fixpoint and only the final pass reports.
//
// Function literals are separate units, except for deferred closures, which are
// analyzed with the states leaving the enclosing function.
package walker
