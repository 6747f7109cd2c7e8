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
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

func TestDummy(t *testing.T) {
	type test struct {
		name     string
		forType  reflect.Type
		expected interface{}
	}

	tests := []test{
		{"bool", reflect.TypeOf(true), false},
		{"int", reflect.TypeOf(1), 0},
		{"uint8", reflect.TypeOf(uint8(1)), uint8(0)},
		{"float64", reflect.TypeOf(1.5), 0.0},
		{"named float", reflect.TypeOf(celsius(1)), celsius(0)},
		{"string", reflect.TypeOf("x"), ""},
		{"named string", reflect.TypeOf(tstring("x")), tstring("")},
		{"empty struct", reflect.TypeOf(struct{}{}), struct{}{}},
		{"empty array", reflect.TypeOf([0]int{}), [0]int{}},
		{"error", errorType, nil},
	}

	for _, tt := range tests {
		test := tt
		t.Run(test.name, func(t *testing.T) {
			v, err := Dummy(test.forType)
			require.NoError(t, err)
			assert.Equal(t, test.expected, v)
		})
	}
}

func TestDummyCannotFabricate(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(&user{}),
		reflect.TypeOf(user{}),
		reflect.TypeOf([]int{}),
		reflect.TypeOf([2]int{}),
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(make(chan int)),
		reflect.TypeOf(func() {}),
		reflect.TypeOf((*io.Reader)(nil)).Elem(),
	}

	for _, rt := range types {
		_, err := Dummy(rt)
		var cannot *CannotFabricateError
		if assert.ErrorAs(t, err, &cannot, "%v", rt) {
			assert.Equal(t, rt, cannot.Type)
		}
	}
}

func TestDummyOf(t *testing.T) {
	i, err := DummyOf[int]()
	assert.NoError(t, err)
	assert.Equal(t, 0, i)

	e, err := DummyOf[error]()
	assert.NoError(t, err)
	assert.Nil(t, e)

	_, err = DummyOf[*user]()
	var cannot *CannotFabricateError
	assert.True(t, errors.As(err, &cannot))
}

func TestDummies(t *testing.T) {
	results, err := dummies(apiMethod(t, "Store"))
	require.NoError(t, err)
	assert.Equal(t, Results{nil}, results)

	results, err = dummies(apiMethod(t, "Fetch"))
	assert.Error(t, err)
	assert.Equal(t, Results{nil, nil}, results)

	results, err = dummies(apiMethod(t, "Touch"))
	assert.NoError(t, err)
	assert.Nil(t, results)
}
