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

// T is compatible with builtin testing.T
type T interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
}

type cleaner interface {
	Cleanup(func())
}

// Mode determines what happens to a mock invocation
type Mode int

const (
	// Normal invocations are recorded in the mock's Ledger and answered by its stubs
	Normal Mode = iota
	// Configuring invocations are captured as the pattern for a new stub
	Configuring
	// Verifying invocations are captured as patterns to verify against the Ledger
	Verifying
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Configuring:
		return "Configuring"
	case Verifying:
		return "Verifying"
	}
	return "Unknown"
}

type captureSlot struct {
	last      *Invocation
	onCapture func(*Invocation)
}

/*
A Session is the recording context of one logical test execution, usually one per *testing.T.

Mocks are bound to a session when they are created. The session decides whether their invocations are
real calls (Normal mode) or probes made inside Every, Verify, VerifyOrder and VerifySequence, and it
holds the argument matchers staged by Any, Eq, Match and Arg for the next mock call.

Sessions never share state with each other, so parallel tests each using their own session cannot see
each other's probes. A session must not be probed while the system under test is concurrently calling
its mocks.
*/
type Session struct {
	t        T
	registry *Registry
	trace    bool

	mutex  sync.Mutex
	mode   Mode
	staged []Matcher
	slot   captureSlot
	mocks  []uuid.UUID
}

/*
NewSession returns a session that reports through t.

configurators are used to configure tracing and the registry. If t has a Cleanup method (as *testing.T
does) the ledgers and stubs of the session's mocks are forgotten when the test completes.
*/
func NewSession(t T, configurators ...func(*Session)) *Session {
	s := &Session{t: t, registry: DefaultRegistry()}
	for _, c := range configurators {
		c(s)
	}
	if c, isCleaner := t.(cleaner); isCleaner {
		c.Cleanup(s.forgetMocks)
	}
	return s
}

// WithRegistry configures a session to keep ledgers and stubs in r instead of DefaultRegistry
func WithRegistry(r *Registry) func(*Session) {
	return func(s *Session) {
		s.registry = r
	}
}

// Enable tracing of all received method calls and probes (via T.Logf)
func (s *Session) EnableTrace() {
	s.trace = true
}

func (s *Session) T() T {
	return s.t
}

func (s *Session) Registry() *Registry {
	return s.registry
}

// Mode returns the current mode
func (s *Session) Mode() Mode {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.mode
}

// LastCaptured returns the invocation captured by the most recent probe, if any
func (s *Session) LastCaptured() *Invocation {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.slot.last
}

func (s *Session) addMock(id uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mocks = append(s.mocks, id)
}

func (s *Session) forgetMocks() {
	s.mutex.Lock()
	mocks := s.mocks
	s.mocks = nil
	s.mutex.Unlock()
	for _, id := range mocks {
		s.registry.Forget(id)
	}
}

func (s *Session) stage(m Matcher) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.staged = append(s.staged, m)
}

// drainMatchers takes the staged matchers, leaving none for the next call
func (s *Session) drainMatchers() ([]Matcher, Mode) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	staged := s.staged
	s.staged = nil
	return staged, s.mode
}

// record routes inv by the current mode and returns the mode that applied
func (s *Session) record(inv *Invocation) Mode {
	s.mutex.Lock()
	mode := s.mode
	if mode == Normal {
		s.mutex.Unlock()
		s.registry.Ledger(inv.MockID).Append(inv)
		return mode
	}
	s.slot.last = inv
	onCapture := s.slot.onCapture
	s.mutex.Unlock()

	if onCapture != nil {
		onCapture(inv)
	}
	return mode
}

// runInMode runs probe in mode, restoring Normal mode even if probe panics.
//
// Returns the last invocation captured by probe, onCapture (if not nil) receives all of them.
func (s *Session) runInMode(mode Mode, onCapture func(*Invocation), probe func()) *Invocation {
	s.t.Helper()
	s.mutex.Lock()
	if current := s.mode; current != Normal {
		s.mutex.Unlock()
		s.t.Fatalf("Cannot start a %v probe inside a %v probe", mode, current)
		return nil
	}
	s.mode = mode
	s.slot = captureSlot{onCapture: onCapture}
	s.staged = nil
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		s.mode = Normal
		s.slot.onCapture = nil
		s.staged = nil
	}()

	probe()
	return s.LastCaptured()
}

// capture runs probe in mode and fails fatally unless it called a mock method
func (s *Session) capture(mode Mode, probe func()) *Invocation {
	s.t.Helper()
	captured := s.runInMode(mode, nil, probe)
	if captured == nil {
		s.t.Fatalf("%v: %v", mode, ErrNoCapture)
		return nil
	}
	if s.trace {
		s.t.Logf("%v captured %v", mode, captured)
	}
	return captured
}
