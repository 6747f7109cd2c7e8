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

	"github.com/google/uuid"
)

// Strictness determines how a mock answers a call that matches no stub
type Strictness int

const (
	// StrictStubs fail the call with a *NoStubFoundError
	StrictStubs Strictness = iota
	// RelaxedStubs answer with placeholder values from Dummy where possible
	RelaxedStubs
)

/*
A Mock is the runtime half of a test double for an interface.

A concrete double embeds a *Mock and implements each interface method by passing the method name and
arguments to Invoke and converting the Results, eg

 type UserStoreMock struct {
	*godouble.Mock
 }

 func (m *UserStoreMock) Fetch(id string) (*User, error) {
	r := m.Invoke("Fetch", id)
	return godouble.Result[*User](r, 0), r.Error(1)
 }

Variadic arguments are passed to Invoke as a single slice argument.
*/
type Mock struct {
	id         uuid.UUID
	session    *Session
	contract   reflect.Type
	methods    map[string]reflect.Method
	strictness Strictness
}

/*
NewMock creates a mock bound to session s.

forInterface is expected to be the nil implementation of an interface - (*Iface)(nil)

configurators are used to configure strictness, see Relaxed.
*/
func NewMock(s *Session, forInterface interface{}, configurators ...func(*Mock)) *Mock {
	t := s.T()
	t.Helper()
	doubleFor := reflect.TypeOf(forInterface)

	if doubleFor == nil || doubleFor.Kind() != reflect.Ptr || doubleFor.Elem().Kind() != reflect.Interface {
		t.Fatalf("Expecting '%v' to be a pointer to nil interface", forInterface)
		return nil
	}
	doubleFor = doubleFor.Elem()

	m := &Mock{
		id:       uuid.New(),
		session:  s,
		contract: doubleFor,
		methods:  make(map[string]reflect.Method, doubleFor.NumMethod()),
	}
	for i := 0; i < doubleFor.NumMethod(); i++ {
		method := doubleFor.Method(i)
		m.methods[method.Name] = method
	}
	for _, c := range configurators {
		c(m)
	}
	s.addMock(m.id)
	return m
}

// Relaxed configures a mock to answer unstubbed calls with placeholder values (see Dummy) instead of failing
func Relaxed(m *Mock) {
	m.SetStrictness(RelaxedStubs)
}

func (m *Mock) SetStrictness(strictness Strictness) {
	m.strictness = strictness
}

// ID returns the identity that keys this mock's ledger and stubs
func (m *Mock) ID() uuid.UUID {
	return m.id
}

func (m *Mock) Session() *Session {
	return m.session
}

func (m *Mock) T() T {
	return m.session.t
}

func (m *Mock) String() string {
	return fmt.Sprintf("MockFor(%v)#%s", m.contract, m.id.String()[:8])
}

func (m *Mock) contractName() string {
	if name := m.contract.Name(); name != "" {
		return name
	}
	return m.contract.String()
}

// Ledger returns the record of calls received by this mock
func (m *Mock) Ledger() *Ledger {
	return m.session.registry.Ledger(m.id)
}

// Calls returns all calls received by this mock, in order
func (m *Mock) Calls() []*Invocation {
	return m.Ledger().Calls()
}

// Reset forgets the calls received by this mock and its stubs
func (m *Mock) Reset() {
	m.session.registry.Forget(m.id)
}

func (m *Mock) method(name string) (method reflect.Method, found bool) {
	method, found = m.methods[name]
	return
}

// Invoke is called by concrete mock implementations to record the invocation of a method and return its results.
func (m *Mock) Invoke(methodName string, args ...interface{}) Results {
	t := m.T()
	t.Helper()

	method, found := m.methods[methodName]
	if !found {
		t.Fatalf("Unexpected call to unknown method %v.%s", m, methodName)
		return nil
	}

	matchers, mode := m.session.drainMatchers()
	if mode == Normal && len(matchers) > 0 {
		t.Errorf("%v.%s received %d argument matchers outside of Every or Verify, ignoring them", m, methodName, len(matchers))
		matchers = nil
	}

	inv, err := newInvocation(m, methodName, args, matchers)
	if err != nil {
		t.Fatalf("%s", err)
		return zeros(method)
	}

	if m.session.record(inv) != Normal {
		//the values are discarded by the probe, so values that cannot be fabricated are left nil
		results, _ := dummies(method)
		return results
	}
	return m.resolve(method, inv)
}

func (m *Mock) resolve(method reflect.Method, inv *Invocation) Results {
	t := m.T()
	t.Helper()

	behavior, err := m.session.registry.Stubs().Resolve(inv)
	if err != nil {
		return m.unstubbed(method, inv, err)
	}

	results, err := behavior.Receive(inv.Args)
	if err != nil {
		t.Fatalf("No return values available for %v: %s", inv, err)
		return zeros(method)
	}
	if err := checkReturnValues(method, results); err != nil {
		t.Fatalf("Stub for %v returned %v: %s", inv, results, err)
		return zeros(method)
	}
	m.traceCall(inv, results)
	return results
}

func (m *Mock) unstubbed(method reflect.Method, inv *Invocation, notFound error) Results {
	t := m.T()
	t.Helper()

	if m.strictness == RelaxedStubs {
		results, err := dummies(method)
		if err != nil {
			t.Fatalf("%s, and relaxed %v %s", notFound, m, err)
			return zeros(method)
		}
		m.traceCall(inv, results)
		return results
	}

	if returnsError(method) {
		results := zeros(method)
		results[len(results)-1] = notFound
		m.traceCall(inv, results)
		return results
	}

	t.Fatalf("%s", notFound)
	return zeros(method)
}

func (m *Mock) traceCall(inv *Invocation, results Results) {
	if m.session.trace {
		t := m.T()
		t.Helper()
		t.Logf("Called %v => %v", inv, results)
	}
}

// zeros returns results of m that convert to the zero values
func zeros(m reflect.Method) Results {
	if m.Type.NumOut() == 0 {
		return nil
	}
	return make(Results, m.Type.NumOut())
}
