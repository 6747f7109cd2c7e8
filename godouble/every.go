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

// A StubBuilder configures the behavior of the invocation captured by Session.Every
type StubBuilder struct {
	session *Session
	pattern *Invocation
	method  reflect.Method
}

/*
Every runs probe in Configuring mode and returns a StubBuilder for the mock call it makes.

The probe calls one mock method using literal arguments (matched by deep equality) or staging helpers:

 s.Every(func() { store.Fetch("123") }).Returns(&User{ID: "123"}, nil)
 s.Every(func() { store.Fetch(Any[string](s)) }).Returns(defaultUser, nil)

Calls made by the probe are not recorded and do not consult existing stubs. A probe that calls no mock
method fails the test fatally. If it calls more than one, the last call is the one stubbed.

When several stubs match a call, the most recently configured wins.
*/
func (s *Session) Every(probe func()) *StubBuilder {
	s.t.Helper()
	b := &StubBuilder{session: s}
	if b.pattern = s.capture(Configuring, probe); b.pattern != nil {
		b.method, _ = b.pattern.mock.method(b.pattern.Method)
	}
	return b
}

// Pattern returns the captured invocation that stubs configured by b will match
func (b *StubBuilder) Pattern() *Invocation {
	return b.pattern
}

// ReturnsFrom registers behavior to produce the results of matching calls, eg a Sequence or ReturnChannel
func (b *StubBuilder) ReturnsFrom(behavior Behavior) {
	t := b.session.t
	t.Helper()
	if b.pattern == nil {
		return
	}
	if err := validate(behavior, b.method); err != nil {
		t.Fatalf("Cannot stub %v: %s", b.pattern, err)
		return
	}
	b.session.registry.Stubs().Register(b.pattern, behavior)
	if b.session.trace {
		t.Logf("Stubbed %v", b.pattern)
	}
}

// Returns registers fixed values, one per method result, for matching calls
func (b *StubBuilder) Returns(values ...interface{}) {
	b.session.t.Helper()
	b.ReturnsFrom(Values(values...))
}

// Succeeds registers values for all but the trailing error result, which is nil
func (b *StubBuilder) Succeeds(values ...interface{}) {
	t := b.session.t
	t.Helper()
	if !b.requireErrorResult("succeed") {
		return
	}
	b.ReturnsFrom(Values(append(values, nil)...))
}

// Raises registers err as the trailing error result of matching calls, other results are zero values
func (b *StubBuilder) Raises(err error) {
	t := b.session.t
	t.Helper()
	if !b.requireErrorResult("raise") {
		return
	}
	n := b.method.Type.NumOut()
	values := make([]interface{}, n)
	for i := 0; i < n-1; i++ {
		values[i] = reflect.Zero(b.method.Type.Out(i)).Interface()
	}
	values[n-1] = err
	b.ReturnsFrom(Values(values...))
}

// Computes registers impl to be called with the arguments of matching calls to produce their results.
//
// impl must have the same signature as the stubbed method.
func (b *StubBuilder) Computes(impl interface{}) {
	b.session.t.Helper()
	b.ReturnsFrom(Compute(impl))
}

func (b *StubBuilder) requireErrorResult(verb string) bool {
	t := b.session.t
	t.Helper()
	if b.pattern == nil {
		return false
	}
	if !returnsError(b.method) {
		t.Fatalf("Cannot %s %v: %s%v does not return a trailing error", verb, b.pattern, b.method.Name, b.method.Type)
		return false
	}
	return true
}
