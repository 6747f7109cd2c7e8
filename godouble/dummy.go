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
	"reflect"
)

// Dummy returns a safe placeholder value of type t.
//
// Booleans, numbers and strings (including named types of those kinds) fabricate their zero value, as does
// any zero-size type such as struct{}. The builtin error interface fabricates nil, meaning no error.
// Any other type fails with a *CannotFabricateError.
func Dummy(t reflect.Type) (interface{}, error) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return reflect.Zero(t).Interface(), nil
	case reflect.Interface:
		if t == errorType {
			return nil, nil
		}
	case reflect.Struct, reflect.Array:
		if t.Size() == 0 {
			return reflect.Zero(t).Interface(), nil
		}
	}
	return nil, &CannotFabricateError{Type: t}
}

// DummyOf is the generic form of Dummy
func DummyOf[V any]() (V, error) {
	var zero V
	v, err := Dummy(reflect.TypeOf(&zero).Elem())
	if err != nil || v == nil {
		return zero, err
	}
	return v.(V), nil
}

// dummies fabricates a placeholder for each result of m.
//
// Results that cannot be fabricated are left nil and the first failure is returned.
func dummies(m reflect.Method) (Results, error) {
	n := m.Type.NumOut()
	if n == 0 {
		return nil, nil
	}
	var firstErr error
	results := make(Results, n)
	for i := 0; i < n; i++ {
		v, err := Dummy(m.Type.Out(i))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results[i] = v
	}
	return results, firstErr
}
