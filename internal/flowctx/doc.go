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

// Package flowctx tracks the constructs enclosing a statement during analysis.
//
// Each [Frame] collects the flow states leaving its construct through break,
// continue, return and panic edges. The walker pushes a frame when it enters a
// function, loop, switch, select or labeled statement and consumes the merged
// exit states when it pops the frame again. [Stack.Loop] drives the fixpoint
// iteration of loop bodies.
package flowctx
