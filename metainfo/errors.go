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

package metainfo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidClassName matches every *ClassNameError.
	ErrInvalidClassName = errors.New("reflequiv(metainfo): invalid reflection class name")
	// ErrClassNotImplemented is returned by Representation for objects
	// whose class has no rule set.
	ErrClassNotImplemented = errors.New("reflequiv(metainfo): representation not implemented for class")
	// ErrExtract wraps failures of individual extraction rules.
	ErrExtract = errors.New("reflequiv(metainfo): field extraction failed")
)

// Kinds of class names a conversion expects.
const (
	ExpectBuiltin = "builtin"
	ExpectParsed  = "parsed"
)

// ClassNameError reports a name passed to ParsedClass or NativeClass that
// is not of the expected kind.
type ClassNameError struct {
	Name     string
	Expected string
}

func (e *ClassNameError) Error() string {
	return fmt.Sprintf("%s not a %s Reflection class.", e.Name, e.Expected)
}

// Is makes errors.Is(err, ErrInvalidClassName) hold.
func (e *ClassNameError) Is(target error) bool {
	return target == ErrInvalidClassName
}
