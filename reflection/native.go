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

import (
	"runtime"
)

// Native class names.
const (
	ClassReflectionClass         = "ReflectionClass"
	ClassReflectionClassConstant = "ReflectionClassConstant"
	ClassReflectionException     = "ReflectionException"
	ClassReflectionExtension     = "ReflectionExtension"
	ClassReflectionFunction      = "ReflectionFunction"
	ClassReflectionGenerator     = "ReflectionGenerator"
	ClassReflectionMethod        = "ReflectionMethod"
	ClassReflectionParameter     = "ReflectionParameter"
	ClassReflectionProperty      = "ReflectionProperty"
	ClassReflectionZendExtension = "ReflectionZendExtension"
	ClassException               = "Exception"
)

// NativeClass reflects a class by name.
type NativeClass struct {
	Name string
}

// NewClass returns a class reflector for name.
func NewClass(name string) *NativeClass {
	return &NativeClass{Name: name}
}

func (*NativeClass) ClassName() string  { return ClassReflectionClass }
func (c *NativeClass) GetName() string { return c.Name }

// NativeClassConstant reflects a class constant.
type NativeClassConstant struct {
	Class *NativeClass
	Name  string
}

// NewClassConstant returns a reflector for class::name.
func NewClassConstant(class, name string) *NativeClassConstant {
	return &NativeClassConstant{Class: NewClass(class), Name: name}
}

func (*NativeClassConstant) ClassName() string          { return ClassReflectionClassConstant }
func (c *NativeClassConstant) GetName() string          { return c.Name }
func (c *NativeClassConstant) GetDeclaringClass() Class { return c.Class }

// NativeProperty reflects a class property.
type NativeProperty struct {
	Class *NativeClass
	Name  string
}

// NewProperty returns a reflector for class::$name.
func NewProperty(class, name string) *NativeProperty {
	return &NativeProperty{Class: NewClass(class), Name: name}
}

func (*NativeProperty) ClassName() string          { return ClassReflectionProperty }
func (p *NativeProperty) GetName() string          { return p.Name }
func (p *NativeProperty) GetDeclaringClass() Class { return p.Class }

// Source locates a function body. A zero Source means no user source.
type Source struct {
	File      string
	StartLine int
	EndLine   int
}

// NativeFunction reflects a named function or a closure.
type NativeFunction struct {
	Name    string
	Source  Source
	Closure any
}

// NewFunction returns a reflector for the named function.
func NewFunction(name string) *NativeFunction {
	return &NativeFunction{Name: name}
}

// NewClosure returns a reflector for closure fn defined at src.
func NewClosure(fn any, src Source) *NativeFunction {
	return &NativeFunction{Name: "{closure}", Source: src, Closure: fn}
}

func (*NativeFunction) ClassName() string     { return ClassReflectionFunction }
func (f *NativeFunction) GetName() string     { return f.Name }
func (f *NativeFunction) GetFileName() string { return f.Source.File }
func (f *NativeFunction) GetStartLine() int   { return f.Source.StartLine }
func (f *NativeFunction) GetEndLine() int     { return f.Source.EndLine }
func (f *NativeFunction) IsClosure() bool     { return f.Closure != nil }
func (f *NativeFunction) GetClosure() any     { return f.Closure }

// NativeMethod reflects a method.
type NativeMethod struct {
	Class   *NativeClass
	Name    string
	Source  Source
	Closure bool
}

// NewMethod returns a reflector for class::name().
func NewMethod(class, name string) *NativeMethod {
	return &NativeMethod{Class: NewClass(class), Name: name}
}

func (*NativeMethod) ClassName() string          { return ClassReflectionMethod }
func (m *NativeMethod) GetName() string          { return m.Name }
func (m *NativeMethod) GetDeclaringClass() Class { return m.Class }
func (m *NativeMethod) GetFileName() string      { return m.Source.File }
func (m *NativeMethod) GetStartLine() int        { return m.Source.StartLine }
func (m *NativeMethod) GetEndLine() int          { return m.Source.EndLine }
func (m *NativeMethod) IsClosure() bool          { return m.Closure }

// NativeParameter reflects a function or method parameter.
type NativeParameter struct {
	Function FunctionAbstract
	Name     string
}

// NewParameter returns a reflector for parameter name of fn.
func NewParameter(fn FunctionAbstract, name string) *NativeParameter {
	return &NativeParameter{Function: fn, Name: name}
}

func (*NativeParameter) ClassName() string                        { return ClassReflectionParameter }
func (p *NativeParameter) GetName() string                        { return p.Name }
func (p *NativeParameter) GetDeclaringFunction() FunctionAbstract { return p.Function }

// NativeExtension reflects a loaded extension.
type NativeExtension struct {
	Name string
	Zend bool
}

// NewExtension returns a reflector for extension name.
func NewExtension(name string) *NativeExtension {
	return &NativeExtension{Name: name}
}

func (e *NativeExtension) ClassName() string {
	if e.Zend {
		return ClassReflectionZendExtension
	}
	return ClassReflectionExtension
}
func (e *NativeExtension) GetName() string { return e.Name }

// NativeGenerator reflects a running generator.
type NativeGenerator struct {
	Generator any
}

func (*NativeGenerator) ClassName() string           { return ClassReflectionGenerator }
func (g *NativeGenerator) GetExecutingGenerator() any { return g.Generator }

// Exception is an error with exception accessors. Class selects how it
// is labelled (ReflectionException, Exception, ...).
type Exception struct {
	Class    string
	Message  string
	Code     int
	Previous error
	// File and Line record where the exception was created.
	File string
	Line int
}

// NewException returns a ReflectionException.
func NewException(message string, code int, previous error) *Exception {
	e := &Exception{Class: ClassReflectionException, Message: message, Code: code, Previous: previous}
	e.capture()
	return e
}

// NewError returns an exception of the given class.
func NewError(class, message string, code int, previous error) *Exception {
	e := &Exception{Class: class, Message: message, Code: code, Previous: previous}
	e.capture()
	return e
}

func (e *Exception) capture() {
	if _, file, line, ok := runtime.Caller(2); ok {
		e.File, e.Line = file, line
	}
}

// ClassName returns the exception class.
func (e *Exception) ClassName() string { return e.Class }

// Error returns the message.
func (e *Exception) Error() string { return e.Message }

// Unwrap returns the previous exception, so errors.Is and errors.As walk
// the chain.
func (e *Exception) Unwrap() error { return e.Previous }

// GetMessage returns the message.
func (e *Exception) GetMessage() string { return e.Message }

// GetCode returns the user-defined code, 0 when unset.
func (e *Exception) GetCode() int { return e.Code }

// GetPrevious returns the previous exception, or nil.
func (e *Exception) GetPrevious() error { return e.Previous }

// GetFile returns the file the exception was created in.
func (e *Exception) GetFile() string { return e.File }

// GetLine returns the line the exception was created on.
func (e *Exception) GetLine() int { return e.Line }

var (
	_ Class     = (*NativeClass)(nil)
	_ Function  = (*NativeFunction)(nil)
	_ Method    = (*NativeMethod)(nil)
	_ Parameter = (*NativeParameter)(nil)
	_ Generator = (*NativeGenerator)(nil)
	_ Throwable = (*Exception)(nil)
)
