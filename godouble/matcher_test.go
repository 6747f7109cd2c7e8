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
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tiface interface {
	test()
}

type tstring string

func (tstring) test() {
	panic("Unexpected call to test()")
}

func TestSingleArgMatchers(t *testing.T) {
	type test struct {
		name        string
		matcher     Matcher
		matching    []interface{}
		notMatching []interface{}
		re          string
	}

	var emptySlice = make([]int, 0)
	var nilSlice []int
	var nilReader io.Reader
	ts := tstring("atest")
	startsWithT := func(x string) bool { return strings.HasPrefix(x, "t") }

	tests := []test{
		{"Anything", Anything(), []interface{}{"one", 10, true, emptySlice, nil}, nil, "Any"},
		{"Eql(string)", Eql("x"), []interface{}{"x"}, []interface{}{"y", "", tstring("x")}, "x"},
		{"Eql(int)", Eql(10), []interface{}{10}, []interface{}{6, -1, 0, int64(10)}, "10"},
		{"Eql(struct)", Eql(struct{ A []int }{[]int{1}}), []interface{}{struct{ A []int }{[]int{1}}}, []interface{}{struct{ A []int }{}}, "Eql"},
		{"NotEql(int)", Not(Eql(10)), []interface{}{6, -1, 0}, []interface{}{10}, "Not.*10"},
		{"Func", Func(startsWithT), []interface{}{"test", "t"}, []interface{}{"", "xt", 10, ts}, "func.*string.*bool"},
		{"FuncExplained", Func(startsWithT, "startswith 't'"), []interface{}{"test"}, []interface{}{""}, "startswith 't'"},
		{"FuncIface", Func(func(e error) bool { return e == nil }), []interface{}{nil}, []interface{}{errors.New("x"), "x"}, "func"},
		{"Nil([]int)", Nil(), []interface{}{nilSlice, nil, nilReader}, []interface{}{emptySlice, []int{1}, 0}, "Nil"},
		{"Slice([]int)", Slice(Eql(10), Eql(20)), []interface{}{[]int{10, 20}, []int{10, 20, 3}}, []interface{}{[]int{10}, []int{1, 20}, emptySlice, nilSlice, "astring"}, `\[.*10.*20.*\]`},
		{"Len([]int)", Len(2), []interface{}{[]int{0, 0}}, []interface{}{emptySlice, []int{1}, []int{1, 2, 3}, 0}, "Len.*2"},
		{"Len(string)", Len(Eql(3)), []interface{}{"one"}, []interface{}{"", "12"}, "Len.*3"},
		{"Len(func >=)", Len(func(l int) bool { return l >= 2 }), []interface{}{"one", "xx"}, []interface{}{"x", ""}, "Len.*func.*int.*bool"},
		{"All()", All(), []interface{}{"one", 10, true, emptySlice}, nil, `All\{\}`},
		{"OneOf()", OneOf(), nil, []interface{}{"one", 10, true, emptySlice}, `OneOf\{\}`},
		{"All", All(Anything(), Eql("xxx"), Len(3)), []interface{}{"xxx"}, []interface{}{"yyy"}, "All.*Any.*xxx.*Len.*3"},
		{"OneOf", OneOf(Eql("xxx"), Len(2)), []interface{}{"xxx", "ab"}, []interface{}{"yyy", ""}, "OneOf.*xxx.*Len.*2"},
		{"IsA", IsA(111), []interface{}{33}, []interface{}{"yyyy", nil}, "int"},
		{"IsAType", IsA(reflect.TypeOf(10)), []interface{}{33}, []interface{}{"yyyy"}, "int"},
		{"IsAIface", IsA(reflect.TypeOf((*tiface)(nil)).Elem()), []interface{}{ts}, []interface{}{"plainstring"}, "tiface"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			matcher, matching, notMatching := test.matcher, test.matching, test.notMatching

			if !regexp.MustCompile(test.re).MatchString(fmt.Sprint(matcher)) {
				t.Errorf("expected '%v' to match '%s'", matcher, test.re)
			}

			for _, arg := range matching {
				if !matcher.Matches(arg) {
					t.Errorf("Expected %s to match %v", matcher, arg)
				}
			}

			for _, notArg := range notMatching {
				if matcher.Matches(notArg) {
					t.Errorf("Expected %s to not match %v", matcher, notArg)
				}
			}
		})
	}
}

func TestToMatcher(t *testing.T) {
	assert.Equal(t, Anything(), toMatcher(Anything()))
	assert.Equal(t, Nil(), toMatcher(nil))
	assert.True(t, toMatcher(reflect.TypeOf("")).Matches("x"))
	assert.True(t, toMatcher(func(i int) bool { return i > 1 }).Matches(2))
	assert.False(t, toMatcher(func(i int) bool { return i > 1 }).Matches("2"))
	assert.False(t, toMatcher(func(i int) bool { return i > 1 }).Matches(nil))
	assert.True(t, toMatcher(5).Matches(5))
}
