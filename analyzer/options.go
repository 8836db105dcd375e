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
	"errors"
	"log/slog"

	"fillmore-labs.com/flowguard/internal/assertion"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/internal/run"
)

// Option configures specific behavior of a [New] flowguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithExcludeTests is an [Option] to skip test files.
func WithExcludeTests(exclude bool) Option { return excludeTestsOption{exclude: exclude} }

type excludeTestsOption struct{ exclude bool }

func (o excludeTestsOption) apply(r *run.Options) {
	r.Behavior.Set(config.ExcludeTests, o.exclude)
}

func (o excludeTestsOption) LogAttr() slog.Attr {
	return slog.Bool("exclude-tests", o.exclude)
}

// WithSuppress is an [Option] to suppress diagnostic kinds, given by code ("dead") or name ("DeadCode").
//
// An unknown kind is reported as an error by every run of the analyzer.
func WithSuppress(kinds ...string) Option { return suppressOption{kinds: kinds} }

type suppressOption struct{ kinds []string }

func (o suppressOption) apply(r *run.Options) {
	for _, s := range o.kinds {
		ks, err := report.ParseKinds(s)
		if err != nil {
			r.Err = errors.Join(r.Err, err)

			continue
		}

		r.Suppress.Enable(ks)
	}
}

func (o suppressOption) LogAttr() slog.Attr {
	return slog.Any("suppress", o.kinds)
}

// WithAssertions is an [Option] to recognize additional assertion functions.
//
// A shape is written as "function:argument:effect", for example
// "github.com/stretchr/testify/require.NotNil:1:nonnil".
func WithAssertions(shapes ...string) Option { return assertionsOption{shapes: shapes} }

type assertionsOption struct{ shapes []string }

func (o assertionsOption) apply(r *run.Options) {
	for _, s := range o.shapes {
		shape, err := assertion.ParseShape(s)
		if err != nil {
			r.Err = errors.Join(r.Err, err)

			continue
		}

		r.Assertions = append(r.Assertions, shape)
	}
}

func (o assertionsOption) LogAttr() slog.Attr {
	return slog.Any("assertions", o.shapes)
}

// WithAssertionsFile is an [Option] to load additional assertion functions from a YAML file.
func WithAssertionsFile(name string) Option { return assertionsFileOption{name: name} }

type assertionsFileOption struct{ name string }

func (o assertionsFileOption) apply(r *run.Options) {
	r.AssertionsFile = o.name
}

func (o assertionsFileOption) LogAttr() slog.Attr {
	return slog.String("assertions-file", o.name)
}

// WithLogger is an [Option] to receive debug output and internal errors.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
