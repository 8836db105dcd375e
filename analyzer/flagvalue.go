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

package analyzer

import (
	"strconv"
	"strings"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

func newBehaviorValue(flags *config.BitMask[config.Behavior], value config.Behavior) boolValue[config.Behavior, *config.BitMask[config.Behavior]] {
	return boolValue[config.Behavior, *config.BitMask[config.Behavior]]{flags: flags, value: value}
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On", "full", "Full":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// kindsValue accumulates suppressed diagnostic kinds.
type kindsValue struct {
	kinds *config.BitMask[report.Kinds]
}

func newKindsValue(kinds *config.BitMask[report.Kinds]) kindsValue { return kindsValue{kinds: kinds} }

// Set implements [flag.Value].
func (f kindsValue) Set(s string) error {
	ks, err := report.ParseKinds(s)
	if err != nil {
		return err
	}

	f.kinds.Enable(ks)

	return nil
}

// String implements [flag.Value].
func (f kindsValue) String() string {
	if f.kinds == nil {
		return ""
	}

	return f.kinds.Value().String()
}

// Get implements [flag.Getter].
func (f kindsValue) Get() any {
	if f.kinds == nil {
		return report.Kinds(0)
	}

	return f.kinds.Value()
}

// shapesValue collects repeated assertion shapes.
type shapesValue struct {
	shapes *[]assertion.Shape
}

func newShapesValue(shapes *[]assertion.Shape) shapesValue { return shapesValue{shapes: shapes} }

// Set implements [flag.Value].
func (f shapesValue) Set(s string) error {
	shape, err := assertion.ParseShape(s)
	if err != nil {
		return err
	}

	*f.shapes = append(*f.shapes, shape)

	return nil
}

// String implements [flag.Value].
func (f shapesValue) String() string {
	if f.shapes == nil {
		return ""
	}

	var b strings.Builder

	for i, shape := range *f.shapes {
		if i > 0 {
			b.WriteByte(',') // ignore error
		}

		b.WriteString(shape.String()) // ignore error
	}

	return b.String()
}

// Get implements [flag.Getter].
func (f shapesValue) Get() any {
	if f.shapes == nil {
		return []assertion.Shape(nil)
	}

	return *f.shapes
}
