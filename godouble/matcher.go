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
)

// Matcher accepts or rejects one argument of a candidate invocation.
//
// Matchers take the place of literal argument values in a pattern. They are staged for the next mock call
// with Any, Eq, Match or Arg.
type Matcher interface {
	// Matches returns true if arg is acceptable
	Matches(arg interface{}) bool
}

// toMatcher converts v into a Matcher.
//
// A Matcher is used as is, a reflect.Type becomes IsA(v), a func(x X) bool becomes a predicate and anything
// else is compared with Eql.
func toMatcher(v interface{}) Matcher {
	switch typed := v.(type) {
	case Matcher:
		return typed
	case reflect.Type:
		return IsA(typed)
	case nil:
		return Nil()
	default:
		if reflect.TypeOf(v).Kind() == reflect.Func {
			return reflectFunc(v)
		}
		return Eql(v)
	}
}

type anything struct{}

func (anything) Matches(interface{}) bool { return true }

func (anything) String() string { return "Any" }

var singletonAnything = anything{}

// Anything is the wildcard matcher, it accepts every argument
func Anything() Matcher {
	return singletonAnything
}

type eqlMatcher struct {
	v interface{}
}

func (e eqlMatcher) Matches(arg interface{}) bool {
	return reflect.DeepEqual(e.v, arg)
}

func (e eqlMatcher) String() string {
	return fmt.Sprintf("Eql(%v)", e.v)
}

// Eql matches a single argument deeply equal (reflect.DeepEqual) to v
func Eql(v interface{}) Matcher {
	return eqlMatcher{v}
}

type funcMatcher[X any] struct {
	f           func(X) bool
	explanation string
}

func (f funcMatcher[X]) Matches(arg interface{}) bool {
	x, ok := arg.(X)
	if !ok {
		// a nil argument can still be offered to a predicate over an interface type
		if arg != nil || interface{}(x) != nil {
			return false
		}
	}
	return f.f(x)
}

func (f funcMatcher[X]) String() string {
	return f.explanation
}

// Func returns a matcher from the predicate f.
//
// The candidate argument is converted to X before f is called; arguments that are not an X do not match.
// Optionally include an explanation that will be formatted to string to describe what is being matched.
func Func[X any](f func(X) bool, explanation ...interface{}) Matcher {
	var explainString string
	if len(explanation) == 0 {
		explainString = fmt.Sprintf("%T", f)
	} else {
		explainString = fmt.Sprint(explanation...)
	}
	return funcMatcher[X]{f, explainString}
}

type reflectFuncMatcher struct {
	reflect.Value
}

func (f reflectFuncMatcher) Matches(arg interface{}) bool {
	ft := f.Type()
	if ft.NumIn() != 1 || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Bool {
		return false
	}
	var in reflect.Value
	if arg == nil {
		in = reflect.Zero(ft.In(0))
		if !nilable(ft.In(0)) {
			return false
		}
	} else if in = reflect.ValueOf(arg); !in.Type().AssignableTo(ft.In(0)) {
		return false
	}
	return f.Call([]reflect.Value{in})[0].Bool()
}

func (f reflectFuncMatcher) String() string {
	return f.Type().String()
}

func reflectFunc(f interface{}) Matcher {
	return reflectFuncMatcher{reflect.ValueOf(f)}
}

type matcherList []Matcher

func (l matcherList) toString(prefix string, lRune rune, rRune rune) string {
	s := strings.Builder{}
	s.WriteString(prefix)
	s.WriteRune(lRune)
	for i, arg := range l {
		if i > 0 {
			s.WriteRune(',')
		}
		s.WriteString(fmt.Sprint(arg))
	}
	s.WriteRune(rRune)
	return s.String()
}

type sliceMatcher struct {
	matcherList
}

// Slice returns a Matcher for a slice or array argument from a list of element matchers.
//
// Matches if each matcher accepts the element in the corresponding position. Elements beyond the
// matchers are not checked. Useful for the trailing slice of a variadic method.
func Slice(matchers ...Matcher) Matcher {
	return &sliceMatcher{matchers}
}

func (sm *sliceMatcher) String() string {
	return sm.toString("Slice", '[', ']')
}

func (sm *sliceMatcher) Matches(arg interface{}) bool {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Array, reflect.Slice:
		if v.Len() < len(sm.matcherList) {
			return false
		}
		for i := 0; i < len(sm.matcherList); i++ {
			if !sm.matcherList[i].Matches(v.Index(i).Interface()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type nilMatcher struct{}

func (n nilMatcher) String() string {
	return "Nil"
}

func (n nilMatcher) Matches(arg interface{}) bool {
	if arg == nil {
		return true
	}
	v := reflect.ValueOf(arg)
	return nilable(v.Type()) && v.IsNil()
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	}
	return false
}

var singletonNilMatcher = nilMatcher{}

// Nil matches a single argument of any nil-able type to be nil (or equivalent)
func Nil() Matcher {
	return singletonNilMatcher
}

type lenMatcher struct {
	Matcher
}

func (l lenMatcher) String() string {
	return fmt.Sprintf("Len(%v)", l.Matcher)
}

func (l lenMatcher) Matches(arg interface{}) bool {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return l.Matcher.Matches(v.Len())
	default:
		return false
	}
}

// Len matches an Array, Chan, Map, Slice or String argument whose length matches v
//
// v may be anything that can match an int
// eg
//
//	Len(0)
//	Len(func(l int) bool { return l <= 10 })
func Len(v interface{}) Matcher {
	return lenMatcher{toMatcher(v)}
}

type isAMatcher struct {
	rt reflect.Type
}

func (m isAMatcher) Matches(arg interface{}) bool {
	if arg == nil {
		return false
	}
	argT := reflect.TypeOf(arg)
	if m.rt.Kind() == reflect.Interface {
		return argT.Implements(m.rt)
	}
	return argT.AssignableTo(m.rt)
}

func (m isAMatcher) String() string {
	return fmt.Sprintf("IsA(%v)", m.rt)
}

// IsA matches a single argument if it is AssignableTo, or Implements, the reflect.Type t
//
// if t is not already a reflect.Type it will be converted with reflect.TypeOf
func IsA(t interface{}) Matcher {
	rt, isType := t.(reflect.Type)
	if !isType {
		rt = reflect.TypeOf(t)
	}
	return isAMatcher{rt}
}

type combinationMatcher struct {
	matcherList
	explain string
}

func (a combinationMatcher) String() string {
	return a.matcherList.toString(a.explain, '{', '}')
}

type andMatcher struct {
	combinationMatcher
}

func (a andMatcher) Matches(arg interface{}) bool {
	for _, m := range a.matcherList {
		if !m.Matches(arg) {
			return false
		}
	}
	return true
}

// All matches if all the matchers match (returns true for no matchers)
func All(matchers ...Matcher) Matcher {
	return andMatcher{combinationMatcher{matchers, "All"}}
}

type orMatcher struct {
	combinationMatcher
}

func (a orMatcher) Matches(arg interface{}) bool {
	for _, m := range a.matcherList {
		if m.Matches(arg) {
			return true
		}
	}
	return false
}

// OneOf matches if any one of the matchers match (returns false for no matchers)
func OneOf(matchers ...Matcher) Matcher {
	return orMatcher{combinationMatcher{matchers, "OneOf"}}
}

type notMatcher struct {
	Matcher
}

func (nm notMatcher) String() string {
	return fmt.Sprintf("Not(%v)", nm.Matcher)
}

func (nm notMatcher) Matches(arg interface{}) bool {
	return !nm.Matcher.Matches(arg)
}

// Not negates matcher
func Not(matcher Matcher) Matcher {
	return notMatcher{matcher}
}
