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

package walker

import "go/types"

// nillable reports whether values of type t can be nil.
//
// Type parameters are not nillable, since they may be instantiated with any type.
func nillable(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return true

	case *types.Basic:
		return u.Kind() == types.UnsafePointer || u.Kind() == types.UntypedNil

	default:
		return false
	}
}

// isStruct reports whether t is a struct type, which roots tracked field references.
func isStruct(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	_, ok := t.Underlying().(*types.Struct)

	return ok
}

// isInterface reports whether t is an interface type, excluding type parameters.
func isInterface(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	return types.IsInterface(t)
}

func isTypeParam(t types.Type) bool {
	_, ok := types.Unalias(t).(*types.TypeParam)

	return ok
}

// isPointer reports whether t is a pointer type.
func isPointer(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	_, ok := t.Underlying().(*types.Pointer)

	return ok
}

// isPointerToArray reports whether t is a pointer to an array type.
func isPointerToArray(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	ptr, ok := t.Underlying().(*types.Pointer)
	if !ok {
		return false
	}

	_, ok = ptr.Elem().Underlying().(*types.Array)

	return ok
}

// isMap reports whether t is a map type.
func isMap(t types.Type) bool {
	if t == nil || isTypeParam(t) {
		return false
	}

	_, ok := t.Underlying().(*types.Map)

	return ok
}

// isSignature reports whether t is a function type.
func isSignature(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Signature)

	return ok
}

// pointerReceiver reports whether the method fun has a pointer receiver.
func pointerReceiver(fun *types.Func) bool {
	recv := fun.Signature().Recv()
	if recv == nil {
		return false
	}

	return isPointer(recv.Type())
}
