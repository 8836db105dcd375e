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

package tracker

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strings"
)

// ErrInvalidFuncName is returned when a function name can't be parsed.
var ErrInvalidFuncName = errors.New("invalid function name")

// FuncName identifies a function or method independent of a type checker run.
//
// Methods are keyed by the name of their receiver's base type, so value and
// pointer receivers are not distinguished.
type FuncName struct {
	Path     string // Import path of the package declaring the function or receiver type
	Receiver string // Receiver base type name, empty for functions
	Name     string
}

// FuncNameOf returns the [FuncName] of fun.
func FuncNameOf(fun *types.Func) FuncName {
	recv := fun.Signature().Recv()
	if recv == nil {
		var path string
		if pkg := fun.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Name: fun.Name()}
	}

	path, receiver := receiverName(recv.Type())

	return FuncName{Path: path, Receiver: receiver, Name: fun.Name()}
}

func receiverName(t types.Type) (path, name string) {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	switch t := t.(type) {
	case *types.Named:
		obj := t.Origin().Obj()
		if pkg := obj.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return path, obj.Name()

	case *types.Interface:
		return "", "interface"

	default:
		return "", "<invalid>"
	}
}

// ParseFuncName parses the string form of a [FuncName]:
//
//	example.com/pkg.Func
//	(example.com/pkg.Type).Method
//	(*example.com/pkg.Type).Method
func ParseFuncName(s string) (FuncName, error) {
	var f FuncName

	name := s
	if rest, ok := strings.CutPrefix(s, "("); ok {
		recv, method, ok := strings.Cut(rest, ").")
		if !ok {
			return FuncName{}, fmt.Errorf("%w %q: unterminated receiver", ErrInvalidFuncName, s)
		}

		recv = strings.TrimPrefix(recv, "*")
		if i := strings.LastIndexByte(recv, '.'); i >= 0 {
			f.Path, recv = recv[:i], recv[i+1:]
		}

		if !token.IsIdentifier(recv) {
			return FuncName{}, fmt.Errorf("%w %q: receiver %q", ErrInvalidFuncName, s, recv)
		}

		f.Receiver, name = recv, method
	} else if i := strings.LastIndexByte(s, '.'); i >= 0 {
		f.Path, name = s[:i], s[i+1:]
	}

	if !token.IsIdentifier(name) {
		return FuncName{}, fmt.Errorf("%w %q: name %q", ErrInvalidFuncName, s, name)
	}

	f.Name = name

	return f, nil
}

func (f FuncName) String() string {
	switch {
	case f.Receiver != "" && f.Path != "":
		return "(" + f.Path + "." + f.Receiver + ")." + f.Name

	case f.Receiver != "":
		return "(" + f.Receiver + ")." + f.Name

	case f.Path != "":
		return f.Path + "." + f.Name

	default:
		return f.Name
	}
}
