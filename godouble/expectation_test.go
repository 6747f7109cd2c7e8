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
	"regexp"
	"testing"
)

func TestExpectations(t *testing.T) {
	type test struct {
		name string
		Expectation
		truthy []int
		falsey []int
		re     string
	}

	tests := []test{
		{"Between", Between(5, 11), []int{5, 11, 7}, []int{4, 0, -1, 12, 65434}, "between 5 and 11"},
		{"Exactly", Exactly(5), []int{5}, []int{4, 0, -1, 12, 65434}, "exactly 5"},
		{"Once", Once(), []int{1}, []int{0, 2}, "exactly 1"},
		{"Twice", Twice(), []int{2}, []int{0, 1, 3}, "exactly 2"},
		{"Never", Never(), []int{0}, []int{-1, 1, 1124}, "never"},
		{"AtLeast", AtLeast(6), []int{6, 7, 125}, []int{-1, 1, 5}, "at least 6"},
		{"AtLeastOnce", AtLeastOnce(), []int{1, 2, 99}, []int{0}, "at least 1"},
		{"AtMost", AtMost(10), []int{10, 9, 0, 1}, []int{11, 1124}, "at most 10"},
	}

	for _, tt := range tests {
		ex := tt
		t.Run(ex.name, func(t *testing.T) {
			if !regexp.MustCompile(ex.re).MatchString(fmt.Sprint(ex.Expectation)) {
				t.Errorf("Expected %v to match /%s/", ex.Expectation, ex.re)
			}
			for _, expectTrue := range ex.truthy {
				if !ex.Met(expectTrue) {
					t.Errorf("expected %v to be met for %d, but is not", ex, expectTrue)
				}
			}

			for _, expectFalse := range ex.falsey {
				if ex.Met(expectFalse) {
					t.Errorf("Expected %v to not be met for %d, but is", ex, expectFalse)
				}
			}
		})
	}
}
