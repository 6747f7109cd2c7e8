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

// Results are the values returned by Mock.Invoke, one per declared result of the method.
//
// Results have already been checked against the method signature so generated methods convert them with
// Result or Error. A nil entry (a nil interface or pointer, or a placeholder that could not be fabricated
// while probing) converts to the zero value.
type Results []interface{}

// Result returns r[i] as a V, or the zero V
func Result[V any](r Results, i int) V {
	if i < len(r) {
		if v, ok := r[i].(V); ok {
			return v
		}
	}
	var zero V
	return zero
}

// Error returns r[i] as an error, or nil
func (r Results) Error(i int) error {
	return Result[error](r, i)
}
