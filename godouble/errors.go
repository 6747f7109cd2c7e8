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
	"errors"
	"fmt"
	"reflect"
)

// ErrNoCapture is the usage error raised when a probe passed to Every or one of the Verify functions
// does not call any mock method.
var ErrNoCapture = errors.New("no mock call was captured by the probe")

// NoStubFoundError is returned (or fails the test) when a strict mock receives a call that matches no stub.
type NoStubFoundError struct {
	Method     string
	Invocation *Invocation
}

func (e *NoStubFoundError) Error() string {
	return fmt.Sprintf("no stub found for %v", e.Invocation)
}

// TypeMismatchError reports a configured result value that is not assignable to the method's declared result.
type TypeMismatchError struct {
	Method   string
	Index    int
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s expects return value %d to be assignable to %v, got %v", e.Method, e.Index, e.Expected, e.Actual)
}

// CannotFabricateError is returned by Dummy for types that have no safe placeholder value.
type CannotFabricateError struct {
	Type reflect.Type
}

func (e *CannotFabricateError) Error() string {
	return fmt.Sprintf("cannot fabricate a placeholder value of type %v", e.Type)
}
