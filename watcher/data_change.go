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

package watcher

import (
	"strings"

	"github.com/ligato/cn-infra/datasync"

	model "github.com/projectcalico/datamodel/model/v1"
)

// propagateChanges classifies every changed key and hands the typed updates
// to the processor. A processor error stops the event; the remaining changes
// are redelivered by the next resync.
func (w *Watcher) propagateChanges(dataChngEv datasync.ChangeEvent) error {
	for _, dataChng := range dataChngEv.GetChanges() {
		key := dataChng.GetKey()
		w.Log.Debug("Received CHANGE key ", key)

		update, ok := w.classify(key, dataChng.GetChangeType(), dataChng)
		if !ok {
			w.Log.WithField("key", key).Debug("Ignoring change of unrecognized key")
			w.Stats.countIgnoredKey()
			continue
		}
		if err := w.Processor.ProcessUpdate(update); err != nil {
			w.Stats.countError(update.Keyword())
			return err
		}
		w.Stats.countDispatched(update.Keyword())
	}
	return nil
}

// classify maps one key to a typed update. Endpoint keys exist under both the
// live host tree and the felix status tree; the prefix decides which update is
// produced. More specific shapes are tried before looser ones, the
// status-hostname shapes last.
func (w *Watcher) classify(key string, op datasync.Op, value datasync.KeyVal) (Update, bool) {
	if model.IsReadyFlagKey(key) {
		return &ReadyUpdate{Key: key, Op: op, Value: value}, true
	}
	if id := model.EndpointIDFromKey(key); id != nil {
		epID := *id
		if w.Pool != nil {
			epID = epID.Intern(w.Pool)
		}
		if strings.HasPrefix(key, model.FelixStatusDir) {
			return &EndpointStatusUpdate{Key: key, ID: epID, Op: op, Value: value}, true
		}
		return &EndpointUpdate{Key: key, ID: epID, Op: op, Value: value}, true
	}
	if profileID, ok := model.ProfileIDFromRulesKey(key); ok {
		return &ProfileRulesUpdate{Key: key, ProfileID: profileID, Op: op, Value: value}, true
	}
	if profileID, ok := model.ProfileIDFromTagsKey(key); ok {
		return &ProfileTagsUpdate{Key: key, ProfileID: profileID, Op: op, Value: value}, true
	}
	if profileID, ok := model.ProfileIDFromProfileDir(key); ok {
		return &ProfileUpdate{Key: key, ProfileID: profileID, Op: op, Value: value}, true
	}
	if hostname, ok := model.HostnameFromHostIPKey(key); ok {
		return &HostIPUpdate{Key: key, Hostname: hostname, Op: op, Value: value}, true
	}
	if hostname, name, ok := model.HostConfigFromKey(key); ok {
		return &HostConfigUpdate{Key: key, Hostname: hostname, Name: name, Op: op, Value: value}, true
	}
	if name, ok := model.ConfigNameFromKey(key); ok {
		return &ConfigUpdate{Key: key, Name: name, Op: op, Value: value}, true
	}
	if encodedCIDR, ok := model.EncodedCIDRFromPoolKey(key); ok {
		return &PoolUpdate{Key: key, EncodedCIDR: encodedCIDR, Op: op, Value: value}, true
	}
	if hostname, ok := model.HostnameFromStatusKey(key); ok {
		return &FelixStatusUpdate{Key: key, Hostname: hostname, Op: op, Value: value}, true
	}
	if hostname, ok := model.HostnameFromLastStatusKey(key); ok {
		return &FelixStatusUpdate{Key: key, Hostname: hostname, Last: true, Op: op, Value: value}, true
	}
	return nil, false
}
