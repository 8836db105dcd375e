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

// Package constant models typed compile-time constants.
//
// A [Constant] is a tagged value of one [Kind]. Constants are created once, when a
// literal or a provably constant expression is folded, and are immutable afterwards,
// so they can be shared between concurrent analyses.
//
// Equality is strict: constants of different kinds never compare equal, even when
// their values are numerically equivalent. Explicit coercion is available through
// [Constant.Convert] and the typed accessors, which panic with a
// *[NotApplicableError] on incompatible kinds.
//
// nil is never a constant.
package constant
