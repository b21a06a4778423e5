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
	"context"
	"sync"

	"github.com/ligato/cn-infra/datasync"
	"github.com/ligato/cn-infra/logging"
	"github.com/ligato/cn-infra/utils/safeclose"

	model "github.com/projectcalico/datamodel/model/v1"
	"github.com/projectcalico/datamodel/pkg/strpool"
)

// watchName identifies the subscription towards the data store.
const watchName = "Calico v1 resources"

// Watcher subscribes to the v1 subtrees of the data store and feeds classified
// updates into the configured processor.
type Watcher struct {
	Deps

	resyncChan chan datasync.ResyncEvent
	changeChan chan datasync.ChangeEvent

	watchDataReg datasync.WatchRegistration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Deps defines dependencies of the watcher.
type Deps struct {
	Log       logging.Logger
	Watcher   datasync.KeyValProtoWatcher /* delivers changes of the v1 subtrees */
	Processor Processor
	Stats     *Stats        /* created by Init when nil */
	Pool      *strpool.Pool /* optional, canonicalizes endpoint identifier strings */
}

// Init starts the event loop and subscribes to the v1 subtrees.
func (w *Watcher) Init() error {
	if w.Stats == nil {
		w.Stats = NewStats()
	}

	w.resyncChan = make(chan datasync.ResyncEvent)
	w.changeChan = make(chan datasync.ChangeEvent)

	var ctx context.Context
	ctx, w.cancel = context.WithCancel(context.Background())

	w.wg.Add(1)
	go w.watchEvents(ctx)

	return w.subscribeWatcher()
}

func (w *Watcher) subscribeWatcher() (err error) {
	w.watchDataReg, err = w.Watcher.
		Watch(watchName, w.changeChan, w.resyncChan, model.WatchPrefixes()...)
	return err
}

func (w *Watcher) watchEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case resyncEv := <-w.resyncChan:
			w.Stats.countResyncEvent()
			data := w.resyncParseEvent(resyncEv)
			err := w.Processor.Resync(data)
			resyncEv.Done(err)

		case dataChngEv := <-w.changeChan:
			w.Stats.countChangeEvent()
			err := w.propagateChanges(dataChngEv)
			dataChngEv.Done(err)

		case <-ctx.Done():
			w.Log.Debug("Stop watching events")
			return
		}
	}
}

// Close stops the event loop and releases the subscription.
func (w *Watcher) Close() error {
	w.cancel()
	w.wg.Wait()
	safeclose.CloseAll(w.watchDataReg, w.resyncChan, w.changeChan)
	return nil
}
