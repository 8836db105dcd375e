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
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the layout of an assertion configuration file:
//
//	assertions:
//	  - func: example.com/check.NotNil
//	    arg: 0
//	    effect: nonnil
type fileConfig struct {
	Assertions []shapeConfig `yaml:"assertions"`
}

type shapeConfig struct {
	Func   string `yaml:"func"`
	Arg    int    `yaml:"arg"`
	Effect Effect `yaml:"effect"`
}

// Decode reads assertion shapes in YAML format from r.
//
// Unknown keys are rejected. An empty document yields no shapes.
func Decode(r io.Reader) ([]Shape, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg fileConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	shapes := make([]Shape, 0, len(cfg.Assertions))

	for i, c := range cfg.Assertions {
		if c.Arg < 0 {
			return nil, fmt.Errorf("%w: entry %d (%s): negative argument index %d", ErrInvalidShape, i+1, c.Func, c.Arg)
		}

		shape, err := makeShape(c.Func, c.Arg, c.Effect)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		shapes = append(shapes, shape)
	}

	return shapes, nil
}

// LoadFile reads assertion shapes from the YAML file name.
func LoadFile(name string) ([]Shape, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	shapes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return shapes, nil
}
