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

package run

import (
	"log/slog"
	"sync"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
)

// Options represent the configuration of the flowguard analyzer.
type Options struct {
	// Behavior holds file selection options.
	Behavior config.BitMask[config.Behavior]

	// Suppress holds the diagnostic kinds not reported.
	Suppress config.BitMask[report.Kinds]

	// Assertions are recognized in addition to the defaults and AssertionsFile.
	Assertions []assertion.Shape

	// AssertionsFile names a YAML file with additional assertion shapes.
	AssertionsFile string

	// Logger receives debug output and internal errors.
	Logger *slog.Logger

	// Err is a configuration error reported by every run.
	Err error

	once  sync.Once
	table *assertion.Table
	err   error
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Table returns the assertion table, built on first use.
//
// Shapes from the command line take precedence over the configuration file,
// which takes precedence over the defaults.
func (r *Options) Table() (*assertion.Table, error) {
	r.once.Do(func() {
		t := assertion.Default()

		if r.AssertionsFile != "" {
			shapes, err := assertion.LoadFile(r.AssertionsFile)
			if err != nil {
				r.err = err

				return
			}

			t.Add(shapes...)
		}

		t.Add(r.Assertions...)

		r.table = t
	})

	return r.table, r.err
}

func (r *Options) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}
