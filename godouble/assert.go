/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package godouble

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// checkReturnValues returns an error unless returnValues are compatible with method's results
func checkReturnValues(method reflect.Method, returnValues []interface{}) error {
	if method.Type.NumOut() != len(returnValues) {
		return fmt.Errorf("%s%v expects to have %d return values, found %d", method.Name, method.Type, method.Type.NumOut(), len(returnValues))
	}

	var result *multierror.Error
	for i, v := range returnValues {
		expected := method.Type.Out(i)
		if v == nil {
			if !nilable(expected) {
				result = multierror.Append(result, &TypeMismatchError{Method: method.Name, Index: i, Expected: expected})
			}
		} else if actual := reflect.TypeOf(v); !actual.AssignableTo(expected) {
			result = multierror.Append(result, &TypeMismatchError{Method: method.Name, Index: i, Expected: expected, Actual: actual})
		}
	}
	return result.ErrorOrNil()
}

// checkMethodOutputs returns an error unless funcType's return types are compatible with m's return types
func checkMethodOutputs(m reflect.Method, funcType reflect.Type) error {
	if m.Type.NumOut() != funcType.NumOut() {
		return fmt.Errorf("%v for %s%v expects to have %d return values, found %d", funcType, m.Name, m.Type, m.Type.NumOut(), funcType.NumOut())
	}

	var result *multierror.Error
	for i := 0; i < funcType.NumOut(); i++ {
		if mType, out := m.Type.Out(i), funcType.Out(i); !out.AssignableTo(mType) {
			result = multierror.Append(result, &TypeMismatchError{Method: m.Name, Index: i, Expected: mType, Actual: out})
		}
	}
	return result.ErrorOrNil()
}

// checkMethodInputs returns an error unless funcType can be called with the arguments of method m
func checkMethodInputs(m reflect.Method, funcType reflect.Type) error {
	if funcType.IsVariadic() != m.Type.IsVariadic() {
		return fmt.Errorf("%s%v expects %v to have variadic=%v, found %v", m.Name, m.Type, funcType, m.Type.IsVariadic(), funcType.IsVariadic())
	}

	if funcType.NumIn() != m.Type.NumIn() {
		return fmt.Errorf("%s%v expects %v to have %d arguments, found %d", m.Name, m.Type, funcType, m.Type.NumIn(), funcType.NumIn())
	}

	var result *multierror.Error
	for i := 0; i < funcType.NumIn(); i++ {
		if !m.Type.In(i).AssignableTo(funcType.In(i)) {
			result = multierror.Append(result, fmt.Errorf("%s%v requires %v arg %d to be assignable from %v", m.Name, m.Type, funcType, i, m.Type.In(i)))
		}
	}
	return result.ErrorOrNil()
}

// returnsError is true when the last result of m is the builtin error interface
func returnsError(m reflect.Method) bool {
	n := m.Type.NumOut()
	return n > 0 && m.Type.Out(n-1) == errorType
}
