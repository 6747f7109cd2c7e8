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
	"sync"
)

// A Ledger is the chronological record of the Normal mode invocations received by one mock
type Ledger struct {
	mutex sync.Mutex
	calls []*Invocation
}

// Append records inv
func (l *Ledger) Append(inv *Invocation) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.calls = append(l.calls, inv)
}

// Calls returns a snapshot of all recorded invocations in the order they were received
func (l *Ledger) Calls() []*Invocation {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	calls := make([]*Invocation, len(l.calls))
	copy(calls, l.calls)
	return calls
}

// FindMatching returns the recorded invocations matched by pattern, in the order they were received
func (l *Ledger) FindMatching(pattern *Invocation) []*Invocation {
	var matched []*Invocation
	//matchers are user code, so scan a snapshot outside the lock
	for _, call := range l.Calls() {
		if pattern.Matches(call) {
			matched = append(matched, call)
		}
	}
	return matched
}

// Count returns the number of recorded invocations
func (l *Ledger) Count() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.calls)
}

// Reset forgets all recorded invocations
func (l *Ledger) Reset() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.calls = nil
}
