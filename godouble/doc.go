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

/*
Package godouble is a TestDouble framework for Go.

A Mock records every call made to it, answers each call with the behavior configured for the first matching
stub, and supports verifying after the fact which calls were received, how many times, with which arguments
and in what order.

Stubbing and verifying use the same call syntax as the code under test: a probe function calls the mock
while the Session is in Configuring or Verifying mode, and the call it makes becomes the pattern.

Setup

 func Test_Stub(t *testing.T) {
	s := NewSession(t)
	store := NewUserStoreMock(s) // A concrete mock embedding *Mock

	//Stub a call with specific arguments
	s.Every(func() { store.Fetch("123") }).Returns(&User{ID: "123"}, nil)

	//Stub any other argument, most recently configured stubs win so configure fallbacks first
	s.Every(func() { store.Delete(Any[string](s)) }).Raises(ErrNotFound)

	// Exercise the system under test substituting store for the real implementation
	// ...
 }

Matchers

Literal arguments in a probe are compared with reflect.DeepEqual. Use Any, Eq, Match or Arg to stage a
Matcher for each argument instead. Matchers are staged in the Session, so parallel tests with their own
sessions never see each other's matchers.

Verify

 s.Verify(func() { store.Fetch(Any[string](s)) }, Exactly(3))

 s.VerifyOrder(func() {
	store.Fetch("1")
	store.Delete("1")
 })

 s.VerifySequence(func() {
	store.Fetch("1")
	store.Fetch("2")
 })

VerifyOrder allows other calls in between, VerifySequence does not. Failed verifications are reported with
T.Errorf.

Strict and Relaxed

A strict mock (the default) answers an unstubbed call with a *NoStubFoundError when the method returns a
trailing error, and fails the test otherwise. A Relaxed mock answers with placeholder values from Dummy,
which only exist for basic types.
*/
package godouble
