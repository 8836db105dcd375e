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

package gclplugin

import (
	"errors"

	flowguard "fillmore-labs.com/flowguard/analyzer"
	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/report"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// ExcludeTests skips _test.go files.
	ExcludeTests *bool `json:"exclude-tests,omitzero"`
	// Suppress lists diagnostic kinds not reported, by code or name.
	Suppress []string `json:"suppress,omitzero"`
	// Assert lists additional assertion functions as func:arg:effect.
	Assert []string `json:"assert,omitzero"`
	// Assertions names a YAML file with additional assertion functions.
	Assertions *string `json:"assertions,omitzero"`
}

// Options converts [Settings] into a list of [flowguard.Option] for the flowguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
//
// Malformed kinds and assertion shapes are reported here, before any package is analyzed.
func (s Settings) Options() ([]flowguard.Option, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var opts []flowguard.Option

	opts = appendOption(opts, s.ExcludeTests, flowguard.WithExcludeTests)
	opts = appendOption(opts, s.Assertions, flowguard.WithAssertionsFile)

	if len(s.Suppress) > 0 {
		opts = append(opts, flowguard.WithSuppress(s.Suppress...))
	}

	if len(s.Assert) > 0 {
		opts = append(opts, flowguard.WithAssertions(s.Assert...))
	}

	return opts, nil
}

func (s Settings) validate() error {
	var errs []error

	for _, k := range s.Suppress {
		if _, err := report.ParseKinds(k); err != nil {
			errs = append(errs, err)
		}
	}

	for _, a := range s.Assert {
		if _, err := assertion.ParseShape(a); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// appendOption appends a non-nil setting to a [flowguard.Option] list.
func appendOption[T any](opts []flowguard.Option, value *T, constructor func(T) flowguard.Option) []flowguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
