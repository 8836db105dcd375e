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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "fillmore-labs.com/flowguard/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(IncludeGenerated)
	assert.True(t, b.Enabled(IncludeGenerated))
	assert.False(t, b.Enabled(ExcludeTests))

	b.Set(ExcludeTests, true)
	b.Set(IncludeGenerated, false)
	assert.Equal(t, ExcludeTests, b.Value())

	b.Enable(IncludeGenerated, ExcludeTests)
	assert.Equal(t, IncludeGenerated|ExcludeTests, b.Value())
}
