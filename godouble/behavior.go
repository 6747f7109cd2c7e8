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
	"math/rand"
	"reflect"
	"sync"
	"time"
)

// A Behavior produces the result values for an invocation that matched a stub.
type Behavior interface {

	// Receive is called with the candidate's arguments when a stubbed method is exercised
	//
	// non nil error means no values are available and will fatally terminate the test
	Receive(args []interface{}) ([]interface{}, error)
}

// A ValidatingBehavior can check itself against the signature of the stubbed method at registration.
type ValidatingBehavior interface {
	Behavior
	ForMethod(method reflect.Method) error
}

type multiValued interface {
	Behavior
	multiValued() bool
}

// A Timewarp can be used to simulate a sleep, eg when testing using a fake clock.
// The canonical sleeper is
//
//	time.After
type Timewarp func(d time.Duration) <-chan time.Time

func validate(b Behavior, method reflect.Method) error {
	if v, isValidating := b.(ValidatingBehavior); isValidating {
		return v.ForMethod(method)
	}
	return nil
}

type fixedValues []interface{}

func (v fixedValues) Receive(_ []interface{}) ([]interface{}, error) {
	return v, nil
}

func (v fixedValues) ForMethod(m reflect.Method) error {
	return checkReturnValues(m, v)
}

// Values stores a fixed set of values returned for every invocation
func Values(values ...interface{}) Behavior {
	return fixedValues(values)
}

type computed struct {
	impl reflect.Value
}

// Compute returns a Behavior that calls impl with the invocation's arguments.
//
// impl must be a func with the same signature as the stubbed method (variadic parameters are received as
// a slice, as they are recorded).
func Compute(impl interface{}) Behavior {
	return computed{reflect.ValueOf(impl)}
}

func (c computed) ForMethod(m reflect.Method) error {
	if !c.impl.IsValid() || c.impl.Kind() != reflect.Func {
		return fmt.Errorf("%v expects a func implementation, got %v", m.Type, c.impl)
	}
	if err := checkMethodInputs(m, c.impl.Type()); err != nil {
		return err
	}
	return checkMethodOutputs(m, c.impl.Type())
}

func (c computed) Receive(args []interface{}) ([]interface{}, error) {
	ft := c.impl.Type()
	if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%v expects %d arguments, received %d", ft, ft.NumIn(), len(args))
	}
	inArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			inArgs[i] = reflect.Zero(ft.In(i))
		} else {
			inArgs[i] = reflect.ValueOf(arg)
		}
	}

	var returnVals []reflect.Value
	if ft.IsVariadic() {
		returnVals = c.impl.CallSlice(inArgs)
	} else {
		returnVals = c.impl.Call(inArgs)
	}

	if len(returnVals) == 0 {
		return nil, nil
	}
	returns := make([]interface{}, len(returnVals))
	for j, v := range returnVals {
		returns[j] = v.Interface()
	}
	return returns, nil
}

// ReturnChannel provides channel semantics for returning values from stub calls
type ReturnChannel interface {

	// Send a list of return values
	Send(...interface{})

	// Close the channel, subsequent invocations that need values will cause the test to fail fatally
	Close()

	// Set a timeout. If the timeout expires before a Value is available on the channel
	// (via Send()) the test will fail fatally.
	SetTimeout(timeout time.Duration, sleeper ...Timewarp)

	Behavior
}

// NewReturnChannel generates return values for successive calls to a stub.
//
// Use the optional bufferSize parameter with a non-zero Value to create a buffered channel.
//
// Use SetTimeout() to override the default timeout of 200 ms.
func NewReturnChannel(bufferSize ...int) ReturnChannel {
	bufSize := 0
	for _, size := range bufferSize {
		bufSize += size
	}
	return &returnChannel{
		values:  make(chan []interface{}, bufSize),
		timeout: 200 * time.Millisecond,
		sleeper: time.After,
	}
}

type returnChannel struct {
	values  chan []interface{}
	timeout time.Duration
	sleeper Timewarp
}

func (rc *returnChannel) multiValued() bool { return true }

func (rc *returnChannel) Receive(_ []interface{}) (returns []interface{}, err error) {
	select {
	case generatedReturns, ok := <-rc.values:
		if ok {
			returns = generatedReturns
		} else {
			err = errors.New("requested values from closed return channel")
		}
	case <-rc.sleeper(rc.timeout):
		err = errors.New("timed out waiting for return channel to provide values")
	}
	return
}

func (rc *returnChannel) Send(returnValues ...interface{}) {
	rc.values <- returnValues
}

func (rc *returnChannel) Close() {
	close(rc.values)
}

// Max time to wait for a Value from the channel before failing the test
func (rc *returnChannel) SetTimeout(timeout time.Duration, sleeper ...Timewarp) {
	if len(sleeper) > 0 {
		rc.sleeper = sleeper[0]
	}
	rc.timeout = timeout
}

type delayedBehavior struct {
	Behavior
	delayer func() time.Duration
	sleeper Timewarp
}

func newDelayedBehavior(b Behavior, f func() time.Duration, sleeper ...Timewarp) Behavior {
	sf := time.After
	if len(sleeper) > 0 {
		sf = sleeper[0]
	}
	return &delayedBehavior{Behavior: b, delayer: f, sleeper: sf}
}

func (d *delayedBehavior) Receive(args []interface{}) ([]interface{}, error) {
	//Simulate IO delay / long poll etc
	<-d.sleeper(d.delayer())
	return d.Behavior.Receive(args)
}

func (d *delayedBehavior) ForMethod(method reflect.Method) error {
	return validate(d.Behavior, method)
}

func (d *delayedBehavior) multiValued() bool {
	mv, isMultiValued := d.Behavior.(multiValued)
	return isMultiValued && mv.multiValued()
}

// Delayed wraps the Behavior b with a fixed delay of 'by' duration
//
// Useful to simulate an asynchronous IO request, allowing other goroutines to run
// while waiting for the response.
//
// An optional sleeper function, defaulting to time.After, can be provided. eg for use with fake clock
func Delayed(b Behavior, by time.Duration, sleep ...Timewarp) Behavior {
	return newDelayedBehavior(b, func() time.Duration { return by }, sleep...)
}

// RandDelayed wraps the Behavior b with a delay of up to 'max' duration, or no delay if max is not positive
func RandDelayed(b Behavior, max time.Duration, sleep ...Timewarp) Behavior {
	if max <= 0 {
		return Delayed(b, 0, sleep...)
	}
	return newDelayedBehavior(b, func() time.Duration { return time.Duration(rand.Int63n(int64(max))) }, sleep...)
}

type sequentialBehavior struct {
	mutex     sync.Mutex
	behaviors []Behavior
	pos       int
}

// Sequence returns values from each of 'behaviors' in turn until there are no further values available.
//
// A ReturnChannel in the sequence provides values until it is closed (or times out).
func Sequence(behaviors ...Behavior) Behavior {
	return &sequentialBehavior{behaviors: behaviors}
}

func (s *sequentialBehavior) multiValued() bool { return true }

func (s *sequentialBehavior) Receive(args []interface{}) ([]interface{}, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for s.pos < len(s.behaviors) {
		b := s.behaviors[s.pos]
		mv, isMultiValued := b.(multiValued)
		repeatable := isMultiValued && mv.multiValued()
		if !repeatable {
			s.pos++
		}
		result, err := b.Receive(args)
		if err == nil {
			return result, nil
		}
		if repeatable {
			s.pos++
		}
	}
	return nil, errors.New("no available values")
}

func (s *sequentialBehavior) ForMethod(m reflect.Method) error {
	for _, b := range s.behaviors {
		if err := validate(b, m); err != nil {
			return err
		}
	}
	return nil
}
