/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflection

import "dirpx.dev/reflequiv/apis"

// Reflector is any inspectable object. Its class name decides which rule
// set describes it.
type Reflector interface {
	apis.Classer
}

// Named exposes getName().
type Named interface {
	GetName() string
}

// Class is a class reflector.
type Class interface {
	Reflector
	Named
}

// ClassMember exposes getDeclaringClass() (constants, methods, properties).
type ClassMember interface {
	GetDeclaringClass() Class
}

// FunctionAbstract is the common part of functions and methods.
type FunctionAbstract interface {
	Reflector
	Named
	// GetFileName returns "" for functions with no user source.
	GetFileName() string
	GetStartLine() int
	GetEndLine() int
	IsClosure() bool
}

// Function is a function reflector.
type Function interface {
	FunctionAbstract
	// GetClosure returns the closure the reflector was built from, if any.
	GetClosure() any
}

// Method is a method reflector.
type Method interface {
	FunctionAbstract
	ClassMember
}

// Parameter is a parameter reflector.
type Parameter interface {
	Reflector
	Named
	GetDeclaringFunction() FunctionAbstract
}

// Generator is a generator reflector.
type Generator interface {
	Reflector
	GetExecutingGenerator() any
}

// Throwable is an error carrying the exception accessors. Plain Go errors
// are accepted wherever a Throwable is, with code 0 and errors.Unwrap as
// the previous error.
type Throwable interface {
	error
	GetMessage() string
	GetCode() int
	GetPrevious() error
}
