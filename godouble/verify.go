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
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

/*
Verify runs probe in Verifying mode and asserts the number of recorded calls matching the mock call it makes.

 s.Verify(func() { store.Fetch(Any[string](s)) }, Exactly(3))

Without an expectation the call is expected AtLeastOnce. A failed expectation is reported with T.Errorf so
that later verifications still run. Returns true if all expectations were met.
*/
func (s *Session) Verify(probe func(), times ...Expectation) bool {
	s.t.Helper()
	pattern := s.capture(Verifying, probe)
	if pattern == nil {
		return false
	}
	if len(times) == 0 {
		times = []Expectation{AtLeastOnce()}
	}

	ledger := s.registry.Ledger(pattern.MockID)
	matched := ledger.FindMatching(pattern)
	met := true
	for _, expect := range times {
		if !expect.Met(len(matched)) {
			met = false
			s.t.Errorf("%v expected %v, found %d calls%s", pattern, expect, len(matched), closestCall(pattern, matched, ledger))
		}
	}
	return met
}

// Calls runs probe in Verifying mode and returns the recorded calls matching the mock call it makes
func (s *Session) Calls(probe func()) []*Invocation {
	s.t.Helper()
	pattern := s.capture(Verifying, probe)
	if pattern == nil {
		return nil
	}
	return s.registry.Ledger(pattern.MockID).FindMatching(pattern)
}

/*
VerifyOrder asserts that the mock calls made by probe were received in the same order, possibly with other
calls in between.

 s.VerifyOrder(func() {
	store.Fetch(Any[string](s))
	store.Delete(Any[string](s))
 })

Calls to several mocks may be verified together.
*/
func (s *Session) VerifyOrder(probe func()) bool {
	s.t.Helper()
	expected, actual := s.captureAll(probe)
	if expected == nil {
		return false
	}
	if !isSubsequence(expected, actual) {
		s.t.Errorf("expected calls in order\n%s\nfound\n%s", listCalls(expected), listCalls(actual))
		return false
	}
	return true
}

// VerifySequence asserts that the mock calls made by probe were received consecutively, in the same order
func (s *Session) VerifySequence(probe func()) bool {
	s.t.Helper()
	expected, actual := s.captureAll(probe)
	if expected == nil {
		return false
	}
	if !containsSequence(expected, actual) {
		s.t.Errorf("expected consecutive calls\n%s\nfound\n%s", listCalls(expected), listCalls(actual))
		return false
	}
	return true
}

// captureAll runs probe collecting every call as an expected pattern, and returns the actual calls of the
// mocks involved in the order received
func (s *Session) captureAll(probe func()) (expected []*Invocation, actual []*Invocation) {
	s.t.Helper()
	s.runInMode(Verifying, func(inv *Invocation) {
		expected = append(expected, inv)
	}, probe)

	if len(expected) == 0 {
		s.t.Fatalf("%v: %v", Verifying, ErrNoCapture)
		return nil, nil
	}
	if s.trace {
		s.t.Logf("%v captured\n%s", Verifying, listCalls(expected))
	}
	return expected, s.chronological(expected)
}

// chronological merges the ledgers of every mock referenced by patterns
func (s *Session) chronological(patterns []*Invocation) []*Invocation {
	var calls []*Invocation
	seen := make(map[uuid.UUID]bool)
	for _, p := range patterns {
		if !seen[p.MockID] {
			seen[p.MockID] = true
			calls = append(calls, s.registry.Ledger(p.MockID).Calls()...)
		}
	}
	sort.SliceStable(calls, func(i, j int) bool { return calls[i].tick < calls[j].tick })
	return calls
}

// isSubsequence is true if each expected pattern matches a distinct actual call, in order
func isSubsequence(expected []*Invocation, actual []*Invocation) bool {
	a := 0
	for _, e := range expected {
		for a < len(actual) && !e.Matches(actual[a]) {
			a++
		}
		if a == len(actual) {
			return false
		}
		a++
	}
	return true
}

// containsSequence is true if the expected patterns match a contiguous run of actual calls
func containsSequence(expected []*Invocation, actual []*Invocation) bool {
	for start := 0; start+len(expected) <= len(actual); start++ {
		matched := true
		for i, e := range expected {
			if !e.Matches(actual[start+i]) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func listCalls(calls []*Invocation) string {
	if len(calls) == 0 {
		return "  (no calls)"
	}
	sb := strings.Builder{}
	for i, call := range calls {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(fmt.Sprintf("  %d: %v", i+1, call))
	}
	return sb.String()
}

// closestCall describes how the latest call to the same method differs from an exact pattern that matched nothing
func closestCall(pattern *Invocation, matched []*Invocation, ledger *Ledger) string {
	if pattern.ByMatchers() || len(matched) > 0 {
		return ""
	}
	calls := ledger.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		call := calls[i]
		if call.Method != pattern.Method || len(call.Args) != len(pattern.Args) {
			continue
		}
		if diff := argsDiff(pattern.Args, call.Args); diff != "" {
			return fmt.Sprintf("\nclosest call %v (-want +got):\n%s", call, diff)
		}
	}
	return ""
}

func argsDiff(want []interface{}, got []interface{}) (diff string) {
	defer func() {
		if recover() != nil {
			diff = ""
		}
	}()
	return cmp.Diff(want, got, cmp.Exporter(func(reflect.Type) bool { return true }))
}
