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

// Package broker provides an in-memory bytes broker for tests exercising
// code that writes through a narrow Put/Delete interface.
package broker

import (
	"github.com/ligato/cn-infra/datasync"
)

// Mock is an in-memory bytes key-value store.  The zero value is ready to
// use.
type Mock struct {
	Data map[string][]byte

	putError error
	delError error
}

// Put stores a copy of data under key.
func (mb *Mock) Put(key string, data []byte, opts ...datasync.PutOption) error {
	if mb.putError != nil {
		return mb.putError
	}
	if mb.Data == nil {
		mb.Data = map[string][]byte{}
	}
	mb.Data[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the value under key.
func (mb *Mock) Delete(key string, opts ...datasync.DelOption) (existed bool, err error) {
	if mb.delError != nil {
		return false, mb.delError
	}
	_, existed = mb.Data[key]
	delete(mb.Data, key)
	return existed, nil
}

// GetValue returns the stored value for assertions.
func (mb *Mock) GetValue(key string) (data []byte, found bool) {
	data, found = mb.Data[key]
	return data, found
}

// Keys returns all stored keys.
func (mb *Mock) Keys() []string {
	var res []string
	for k := range mb.Data {
		res = append(res, k)
	}
	return res
}

// InjectPutError makes subsequent Put calls fail with the given error.
func (mb *Mock) InjectPutError(err error) {
	mb.putError = err
}

// InjectDeleteError makes subsequent Delete calls fail with the given error.
func (mb *Mock) InjectDeleteError(err error) {
	mb.delError = err
}
