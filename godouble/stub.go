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

	"github.com/google/uuid"
)

// A StubEntry binds a Behavior to the invocations matched by Pattern
type StubEntry struct {
	Pattern  *Invocation
	Behavior Behavior
}

type stubKey struct {
	mock   uuid.UUID
	method string
}

// A StubTable holds the configured stubs of every mock, keyed by mock and method.
//
// The most recently registered stub whose pattern matches a candidate wins; there is no ranking by
// specificity, so a later wildcard stub hides an earlier specific one.
type StubTable struct {
	mutex   sync.Mutex
	entries map[stubKey][]StubEntry
}

// NewStubTable returns an empty StubTable
func NewStubTable() *StubTable {
	return &StubTable{entries: make(map[stubKey][]StubEntry)}
}

// Register prepends a stub for pattern
func (st *StubTable) Register(pattern *Invocation, behavior Behavior) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	key := stubKey{pattern.MockID, pattern.Method}
	existing := st.entries[key]
	// copy on write, Resolve scans snapshots outside the lock
	entries := make([]StubEntry, 0, len(existing)+1)
	entries = append(entries, StubEntry{Pattern: pattern, Behavior: behavior})
	st.entries[key] = append(entries, existing...)
}

// Resolve returns the Behavior of the newest stub matching candidate, or a *NoStubFoundError
func (st *StubTable) Resolve(candidate *Invocation) (Behavior, error) {
	for _, entry := range st.Entries(candidate.MockID, candidate.Method) {
		if entry.Pattern.Matches(candidate) {
			return entry.Behavior, nil
		}
	}
	return nil, &NoStubFoundError{Method: candidate.Method, Invocation: candidate}
}

// Entries returns the stubs registered for method of mock id, newest first
func (st *StubTable) Entries(id uuid.UUID, method string) []StubEntry {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.entries[stubKey{id, method}]
}

func (st *StubTable) forget(id uuid.UUID) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	for key := range st.entries {
		if key.mock == id {
			delete(st.entries, key)
		}
	}
}

func (st *StubTable) reset() {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.entries = make(map[stubKey][]StubEntry)
}
