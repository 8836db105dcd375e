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

package assertions

import "test/check"

type T struct{ f int }

func lookup(m map[string]*T) int {
	p := m["key"]
	if p == nil {
		println()
	}

	check.NotNil(p)

	return p.f
}

func guarded(p *T) int {
	if p == nil {
		println()
	}

	check.True(p != nil)

	return p.f
}

func unchecked(p *T) int {
	if p == nil {
		println()
	}

	return p.f // want "fg:pnpe"
}
