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

package datasync

import (
	"github.com/ligato/cn-infra/datasync"
)

// Watcher implements datasync.KeyValProtoWatcher.  It records the
// subscription made by the code under test and lets the test push events
// into the captured channels.
type Watcher struct {
	resyncName string
	changeChan chan datasync.ChangeEvent
	resyncChan chan datasync.ResyncEvent
	prefixes   []string
	regClosed  bool
	watchError error
}

// NewWatcher returns a watcher with no subscription yet.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch records the subscription.  At most one subscription is supported.
func (w *Watcher) Watch(resyncName string, changeChan chan datasync.ChangeEvent,
	resyncChan chan datasync.ResyncEvent, keyPrefixes ...string) (datasync.WatchRegistration, error) {

	if w.watchError != nil {
		return nil, w.watchError
	}
	w.resyncName = resyncName
	w.changeChan = changeChan
	w.resyncChan = resyncChan
	w.prefixes = keyPrefixes
	return &registration{watcher: w}, nil
}

// Subscription returns the recorded resync name and key prefixes.
func (w *Watcher) Subscription() (resyncName string, keyPrefixes []string) {
	return w.resyncName, w.prefixes
}

// PushChange delivers a change event to the subscribed channel.  Must be
// called after Watch.
func (w *Watcher) PushChange(ev datasync.ChangeEvent) {
	w.changeChan <- ev
}

// PushResync delivers a resync event to the subscribed channel.  Must be
// called after Watch.
func (w *Watcher) PushResync(ev datasync.ResyncEvent) {
	w.resyncChan <- ev
}

// RegistrationClosed reports whether the code under test closed its watch
// registration.
func (w *Watcher) RegistrationClosed() bool {
	return w.regClosed
}

// InjectWatchError makes the next Watch call fail with the given error.
func (w *Watcher) InjectWatchError(err error) {
	w.watchError = err
}

type registration struct {
	watcher *Watcher
}

func (r *registration) Register(resyncName string, keyPrefix string) error {
	r.watcher.prefixes = append(r.watcher.prefixes, keyPrefix)
	return nil
}

func (r *registration) Unregister(keyPrefix string) error {
	for i, p := range r.watcher.prefixes {
		if p == keyPrefix {
			r.watcher.prefixes = append(r.watcher.prefixes[:i], r.watcher.prefixes[i+1:]...)
			break
		}
	}
	return nil
}

func (r *registration) Close() error {
	r.watcher.regClosed = true
	return nil
}
