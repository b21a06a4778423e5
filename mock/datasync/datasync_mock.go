// Copyright (c) 2019 Tigera, Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package datasync provides an in-memory stand-in for the cn-infra datasync
// APIs: a store that fabricates change and resync events from test data, and
// a watcher that records subscriptions and feeds events into the captured
// channels.
package datasync

import (
	"context"
	"strings"
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/ligato/cn-infra/datasync"
)

// Mock is an in-memory key-value store generating datasync events.
type Mock struct {
	data map[string]*entry

	// mu guards anyError; Done may run on the consumer goroutine.
	mu       sync.Mutex
	anyError error
}

type entry struct {
	val proto.Message
	rev int64
}

// NewMock returns an empty mock store.
func NewMock() *Mock {
	return &Mock{
		data: make(map[string]*entry),
	}
}

// PutEvent stores value under key and returns the corresponding data change
// event.  A nil value turns the call into DeleteEvent.
func (m *Mock) PutEvent(key string, value proto.Message) datasync.ChangeEvent {
	if value == nil {
		return m.DeleteEvent(key)
	}
	var prevVal proto.Message
	if prev, modify := m.data[key]; modify {
		prevVal = prev.val
		prev.val = value
		prev.rev++
	} else {
		m.data[key] = &entry{val: value}
	}
	return &changeEvent{
		mock: m,
		resp: &watchResp{
			op: datasync.Put,
			keyVal: keyVal{
				key: key,
				val: value,
				rev: m.data[key].rev,
			},
			prevVal: prevVal,
		},
	}
}

// DeleteEvent removes the value under key and returns the corresponding data
// change event, or nil if the key was absent.
func (m *Mock) DeleteEvent(key string) datasync.ChangeEvent {
	prev, found := m.data[key]
	if !found {
		return nil
	}
	delete(m.data, key)
	return &changeEvent{
		mock: m,
		resp: &watchResp{
			op: datasync.Delete,
			keyVal: keyVal{
				key: key,
				val: prev.val,
				rev: prev.rev,
			},
		},
	}
}

// ResyncEvent returns a resync event holding a snapshot of the store
// restricted to the given key prefixes.
func (m *Mock) ResyncEvent(keyPrefixes ...string) datasync.ResyncEvent {
	ev := &resyncEvent{
		mock:        m,
		keyPrefixes: keyPrefixes,
		data:        make(map[string]*entry),
	}
	for key, e := range m.data {
		ev.data[key] = &entry{
			val: proto.Clone(e.val),
			rev: e.rev,
		}
	}
	return ev
}

// AnyError returns non-nil if any generated event was completed with an
// error.
func (m *Mock) AnyError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anyError
}

func (m *Mock) recordError(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anyError = err
}

//// Key-value pair ////

type keyVal struct {
	key string
	val proto.Message
	rev int64
}

// GetValue unmarshals the stored value through a marshalled copy, so the
// caller never aliases the stored message.
func (kv *keyVal) GetValue(value proto.Message) error {
	tmp, err := proto.Marshal(kv.val)
	if err != nil {
		return err
	}
	return proto.Unmarshal(tmp, value)
}

func (kv *keyVal) GetRevision() int64 {
	return kv.rev
}

func (kv *keyVal) GetKey() string {
	return kv.key
}

//// Change event ////

type changeEvent struct {
	mock *Mock
	resp *watchResp
}

func (ce *changeEvent) GetChanges() []datasync.ProtoWatchResp {
	return []datasync.ProtoWatchResp{ce.resp}
}

func (ce *changeEvent) GetContext() context.Context {
	return context.Background()
}

// Done records a non-nil error on the mock.
func (ce *changeEvent) Done(err error) {
	ce.mock.recordError(err)
}

type watchResp struct {
	op datasync.Op
	keyVal
	prevVal proto.Message
}

func (wr *watchResp) GetChangeType() datasync.Op {
	return wr.op
}

func (wr *watchResp) GetPrevValue(prevValue proto.Message) (prevValueExist bool, err error) {
	if wr.prevVal == nil {
		return false, nil
	}
	tmp, err := proto.Marshal(wr.prevVal)
	if err != nil {
		return true, err
	}
	return true, proto.Unmarshal(tmp, prevValue)
}

//// Resync event ////

type resyncEvent struct {
	mock        *Mock
	keyPrefixes []string
	data        map[string]*entry
}

func (re *resyncEvent) GetContext() context.Context {
	return context.Background()
}

// Done records a non-nil error on the mock.
func (re *resyncEvent) Done(err error) {
	re.mock.recordError(err)
}

// GetValues returns an iterator per subscribed key prefix with at least one
// snapshotted key under it.
func (re *resyncEvent) GetValues() map[string]datasync.KeyValIterator {
	values := make(map[string]datasync.KeyValIterator)
	for _, prefix := range re.keyPrefixes {
		var keys []string
		for key := range re.data {
			if strings.HasPrefix(key, prefix) {
				keys = append(keys, key)
			}
		}
		if len(keys) > 0 {
			values[prefix] = &keyValIterator{event: re, keys: keys}
		}
	}
	return values
}

type keyValIterator struct {
	event  *resyncEvent
	keys   []string
	cursor int
}

func (it *keyValIterator) GetNext() (kv datasync.KeyVal, allReceived bool) {
	if it.cursor == len(it.keys) {
		return nil, true
	}
	key := it.keys[it.cursor]
	kv = &keyVal{
		key: key,
		val: it.event.data[key].val,
		rev: it.event.data[key].rev,
	}
	it.cursor++
	return kv, false
}
