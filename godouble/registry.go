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

// A Registry holds the ledgers and stubs of mocks, keyed by mock identity.
//
// Sessions share DefaultRegistry unless configured WithRegistry.
type Registry struct {
	mutex   sync.Mutex
	ledgers map[uuid.UUID]*Ledger
	stubs   *StubTable
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{ledgers: make(map[uuid.UUID]*Ledger), stubs: NewStubTable()}
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the process wide Registry
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Ledger returns the ledger of mock id, creating it on first access
func (r *Registry) Ledger(id uuid.UUID) *Ledger {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	l, found := r.ledgers[id]
	if !found {
		l = &Ledger{}
		r.ledgers[id] = l
	}
	return l
}

// Stubs returns the stub table
func (r *Registry) Stubs() *StubTable {
	return r.stubs
}

// Forget drops the ledger and stubs of mock id
func (r *Registry) Forget(id uuid.UUID) {
	r.mutex.Lock()
	delete(r.ledgers, id)
	r.mutex.Unlock()
	r.stubs.forget(id)
}

// Reset drops all ledgers and stubs
func (r *Registry) Reset() {
	r.mutex.Lock()
	r.ledgers = make(map[uuid.UUID]*Ledger)
	r.mutex.Unlock()
	r.stubs.reset()
}
