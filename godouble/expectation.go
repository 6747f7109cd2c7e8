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

import "fmt"

// An Expectation verifies the number of matching calls
type Expectation interface {
	// Met is true if count calls satisfies the expectation
	Met(count int) bool
}

type calledExactly int

func (times calledExactly) Met(count int) bool {
	return count == int(times)
}

func (times calledExactly) String() string {
	if times == 0 {
		return "never"
	}
	return fmt.Sprintf("exactly %d", int(times))
}

type calledAtLeast int

func (times calledAtLeast) Met(count int) bool {
	return count >= int(times)
}

func (times calledAtLeast) String() string {
	return fmt.Sprintf("at least %d", int(times))
}

type calledBetween struct {
	atLeast int
	atMost  int
}

func (c calledBetween) Met(count int) bool {
	return count >= c.atLeast && count <= c.atMost
}

func (c calledBetween) String() string {
	if c.atLeast <= 0 {
		return fmt.Sprintf("at most %d", c.atMost)
	}
	return fmt.Sprintf("between %d and %d", c.atLeast, c.atMost)
}

// Exactly returns an expectation to be called exactly n times
func Exactly(n int) Expectation {
	return calledExactly(n)
}

// Once is shorthand for Exactly(1)
func Once() Expectation {
	return Exactly(1)
}

// Twice is shorthand for Exactly(2)
func Twice() Expectation {
	return Exactly(2)
}

// Never is shorthand for Exactly(0)
func Never() Expectation {
	return Exactly(0)
}

// AtLeast returns an expectation to be called at least n times
func AtLeast(n int) Expectation {
	return calledAtLeast(n)
}

// AtLeastOnce is shorthand for AtLeast(1), the default expectation of Session.Verify
func AtLeastOnce() Expectation {
	return AtLeast(1)
}

// AtMost returns an expectation to be called at most n times
func AtMost(n int) Expectation {
	return Between(0, n)
}

// Between returns a new expectation that a method is exercised at least min times and at most max times
func Between(min int, max int) Expectation {
	return calledBetween{min, max}
}
