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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fillmore-labs.com/flowguard/internal/tracker"
)

// ErrInvalidShape is returned for malformed assertion configuration.
var ErrInvalidShape = errors.New("invalid assertion shape")

// Shape describes a call recognized as an assertion.
type Shape struct {
	Func   tracker.FuncName
	Arg    int // Index of the asserted argument, not counting the receiver
	Effect Effect
}

// ParseShape parses a shape in the form func:arg:effect, e.g.
//
//	github.com/stretchr/testify/require.NotNil:1:nonnil
func ParseShape(s string) (Shape, error) {
	rest, effect, ok := cutLast(s, ':')
	if !ok {
		return Shape{}, fmt.Errorf("%w %q: want func:arg:effect", ErrInvalidShape, s)
	}

	fun, arg, ok := cutLast(rest, ':')
	if !ok {
		return Shape{}, fmt.Errorf("%w %q: want func:arg:effect", ErrInvalidShape, s)
	}

	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return Shape{}, fmt.Errorf("%w %q: argument index %q", ErrInvalidShape, s, arg)
	}

	e, err := ParseEffect(effect)
	if err != nil {
		return Shape{}, err
	}

	return makeShape(fun, index, e)
}

func makeShape(fun string, arg int, effect Effect) (Shape, error) {
	name, err := tracker.ParseFuncName(fun)
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	return Shape{Func: name, Arg: arg, Effect: effect}, nil
}

func cutLast(s string, sep byte) (before, after string, found bool) {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return s, "", false
	}

	return s[:i], s[i+1:], true
}

func (s Shape) String() string {
	return s.Func.String() + ":" + strconv.Itoa(s.Arg) + ":" + s.Effect.String()
}
