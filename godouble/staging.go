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

// Any stages the wildcard matcher for the next argument of the next mock call in s.
//
// Like all the staging helpers it returns a placeholder to put in the argument position, eg
//
//	s.Every(func() { store.Fetch(Any[string](s)) }).Returns(user, nil)
//
// Use one staging helper for every argument of the call, or none at all.
func Any[V any](s *Session) V {
	return Arg[V](s, Anything())
}

// Eq stages an Eql(v) matcher for the next argument of the next mock call in s, and returns v
func Eq[V any](s *Session, v V) V {
	s.stage(Eql(v))
	return v
}

// Match stages a predicate matcher for the next argument of the next mock call in s
func Match[V any](s *Session, predicate func(V) bool, explanation ...interface{}) V {
	return Arg[V](s, Func(predicate, explanation...))
}

// Arg stages matcher m for the next argument of the next mock call in s
func Arg[V any](s *Session, m Matcher) V {
	s.stage(m)
	var placeholder V
	return placeholder
}
