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
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

var tick uint64 //global atomic counter to assist with verifying order of execution across mocks

// An Invocation is one call to a mock method.
//
// Recorded invocations (made in Normal mode) are stored in the mock's Ledger. Invocations captured while
// probing are used as patterns: an Invocation with Matchers matches candidates whose arguments are accepted
// by the matcher in the same position, one without Matchers matches candidates with deeply equal arguments.
//
// Invocations are immutable once constructed.
type Invocation struct {
	MockID uuid.UUID
	Method string
	Args   []interface{}

	// Matchers is nil for the exact strategy, otherwise one matcher per argument.
	Matchers []Matcher

	mock *Mock
	tick uint64
}

func newInvocation(m *Mock, method string, args []interface{}, matchers []Matcher) (*Invocation, error) {
	if len(matchers) > 0 && len(matchers) != len(args) {
		return nil, fmt.Errorf("%v.%s has %d argument matchers for %d arguments, use one matcher per argument or none at all",
			m, method, len(matchers), len(args))
	}
	if len(matchers) == 0 {
		matchers = nil
	}
	return &Invocation{
		MockID:   m.id,
		Method:   method,
		Args:     snapshot(args),
		Matchers: matchers,
		mock:     m,
		tick:     atomic.AddUint64(&tick, 1),
	}, nil
}

// snapshot copies args, and the elements of any slice argument, so later writes by the caller
// (eg to the backing array of a variadic argument) do not change the recorded call
func snapshot(args []interface{}) []interface{} {
	if args == nil {
		return nil
	}
	recorded := make([]interface{}, len(args))
	for n, arg := range args {
		if v := reflect.ValueOf(arg); v.Kind() == reflect.Slice && !v.IsNil() {
			c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
			reflect.Copy(c, v)
			arg = c.Interface()
		}
		recorded[n] = arg
	}
	return recorded
}

// Mock returns the mock that received this invocation
func (i *Invocation) Mock() *Mock {
	return i.mock
}

// ByMatchers is true if this invocation carries argument matchers
func (i *Invocation) ByMatchers() bool {
	return i.Matchers != nil
}

// Equal reports whether i and other are the same call as recorded: same mock, method and deeply equal arguments
func (i *Invocation) Equal(other *Invocation) bool {
	if i.MockID != other.MockID || i.Method != other.Method {
		return false
	}
	return argsEqual(i.Args, other.Args)
}

func argsEqual(args []interface{}, other []interface{}) bool {
	if len(args) != len(other) {
		return false
	}
	for n, arg := range args {
		if !reflect.DeepEqual(arg, other[n]) {
			return false
		}
	}
	return true
}

// Matches reports whether candidate satisfies the pattern i.
//
// The pattern's strategy drives the comparison, the candidate only supplies argument values.
func (i *Invocation) Matches(candidate *Invocation) bool {
	if i.MockID != candidate.MockID || i.Method != candidate.Method || len(i.Args) != len(candidate.Args) {
		return false
	}
	if i.Matchers == nil {
		return argsEqual(i.Args, candidate.Args)
	}
	for n, matcher := range i.Matchers {
		if !matcher.Matches(candidate.Args[n]) {
			return false
		}
	}
	return true
}

func (i *Invocation) String() string {
	sb := strings.Builder{}
	if i.mock != nil {
		sb.WriteString(i.mock.contractName())
		sb.WriteRune('.')
	}
	sb.WriteString(i.Method)
	sb.WriteRune('(')
	for n, arg := range i.Args {
		if n > 0 {
			sb.WriteString(", ")
		}
		if i.Matchers != nil {
			sb.WriteString(fmt.Sprint(i.Matchers[n]))
		} else {
			sb.WriteString(fmt.Sprintf("%#v", arg))
		}
	}
	sb.WriteRune(')')
	return sb.String()
}
