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
	"github.com/ligato/cn-infra/datasync"
)

// resyncParseEvent turns a resync snapshot into classified updates grouped by
// resource keyword.
func (w *Watcher) resyncParseEvent(resyncEv datasync.ResyncEvent) *ResyncData {
	data := &ResyncData{Updates: make(map[string][]Update)}

	for prefix, it := range resyncEv.GetValues() {
		w.Log.Debug("Received RESYNC key prefix ", prefix)
		for {
			kv, stop := it.GetNext()
			if stop {
				break
			}
			update, ok := w.classify(kv.GetKey(), datasync.Put, kv)
			if !ok {
				w.Log.WithField("key", kv.GetKey()).Debug("Ignoring unrecognized key in resync")
				w.Stats.countIgnoredKey()
				data.Ignored++
				continue
			}
			data.Updates[update.Keyword()] = append(data.Updates[update.Keyword()], update)
		}
	}
	return data
}
