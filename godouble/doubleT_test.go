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

// fatal is the panic value of tDouble.Fatalf
type fatal string

// tDouble is a mock of T, itself bound to a session reporting to the real *testing.T
type tDouble struct {
	*Mock
}

var _ T = (*tDouble)(nil)

func newTDouble(outer *Session) *tDouble {
	return &tDouble{NewMock(outer, (*T)(nil), Relaxed)}
}

func (t *tDouble) Errorf(format string, args ...interface{}) {
	t.Invoke("Errorf", fmt.Sprintf(format, args...))
}

func (t *tDouble) Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.Invoke("Fatalf", msg)
	if t.Session().Mode() == Normal {
		panic(fatal(msg))
	}
}

func (t *tDouble) Logf(format string, args ...interface{}) {
	t.Invoke("Logf", fmt.Sprintf(format, args...))
}

func (t *tDouble) Helper() {
	t.Invoke("Helper")
}

func printfMatcher(re string) func(string) bool {
	return regexp.MustCompile(re).MatchString
}

// expectErrorf verifies the formatted messages passed to Errorf
func (t *tDouble) expectErrorf(re string, times ...Expectation) bool {
	s := t.Session()
	return s.Verify(func() { t.Errorf(Match(s, printfMatcher(re), "/", re, "/")) }, times...)
}

func (t *tDouble) expectLogf(re string, times ...Expectation) bool {
	s := t.Session()
	return s.Verify(func() { t.Logf(Match(s, printfMatcher(re), "/", re, "/")) }, times...)
}

// innerSession returns a session reporting to a tDouble, with its own registry
func innerSession(t *testing.T, configurators ...func(*Session)) (*Session, *tDouble) {
	td := newTDouble(NewSession(t))
	return NewSession(td, append([]func(*Session){WithRegistry(NewRegistry())}, configurators...)...), td
}

// expectFatal runs f, which must fail fatally exactly once through td with a message matching re.
//
// Calls already received by td are forgotten first.
func expectFatal(t *testing.T, td *tDouble, re string, f func()) {
	t.Helper()
	td.Reset()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Errorf("Expected Fatalf matching /%s/", re)
		} else if _, isFatal := r.(fatal); !isFatal {
			panic(r)
		}
		s := td.Session()
		s.Verify(func() { td.Fatalf(Match(s, printfMatcher(re), "/", re, "/")) }, Once())
	}()
	f()
}
