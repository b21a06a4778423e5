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

package endpointidx

import (
	"time"

	"github.com/ligato/cn-infra/idxmap"
	"github.com/ligato/cn-infra/idxmap/mem"
	"github.com/ligato/cn-infra/logging"

	model "github.com/projectcalico/datamodel/model/v1"
)

const hostKey = "hostKey"
const orchestratorKey = "orchestratorKey"

// Endpoint is the value stored in the index for a single workload endpoint.
type Endpoint struct {
	ID model.EndpointID
	// Status is the endpoint status as last reported by the host agent,
	// empty until the first report arrives.
	Status string
}

// Reader provides read API to Index
type Reader interface {
	// LookupEndpoint looks up an entry based on the endpoint key.
	LookupEndpoint(key string) (data *Endpoint, found bool)

	// LookupHost performs lookup based on secondary index host.
	LookupHost(hostname string) (keys []string)

	// LookupOrchestrator performs lookup based on secondary index orchestrator.
	LookupOrchestrator(orchestrator string) (keys []string)

	// ListAll returns all registered keys in the mapping.
	ListAll() (keys []string)

	// Watch subscribe to monitor changes in Index
	Watch(subscriber string, callback func(ChangeEvent)) error
}

// ChangeEvent represents a notification about change in Index delivered to subscribers
type ChangeEvent struct {
	idxmap.NamedMappingEvent
	Value *Endpoint
}

// Index implements a cache of known workload endpoints. Primary index is the
// endpoint key under which the endpoint is stored in the data store.
type Index struct {
	logger  logging.Logger
	mapping idxmap.NamedMappingRW
}

// NewIndex creates new instance of Index
func NewIndex(logger logging.Logger, title string) *Index {
	return &Index{mapping: mem.NewNamedMapping(logger, title, IndexFunction), logger: logger}
}

// RegisterEndpoint adds new entry into the mapping
func (ei *Index) RegisterEndpoint(key string, data *Endpoint) {
	ei.mapping.Put(key, data)
}

// UnregisterEndpoint removes the entry from the mapping
func (ei *Index) UnregisterEndpoint(key string) (data *Endpoint, found bool) {
	d, found := ei.mapping.Delete(key)
	if !found {
		return nil, false
	}
	if data, ok := d.(*Endpoint); ok {
		return data, true
	}
	return nil, true
}

// LookupEndpoint looks up an entry based on the endpoint key.
func (ei *Index) LookupEndpoint(key string) (data *Endpoint, found bool) {
	d, found := ei.mapping.GetValue(key)
	if found {
		if data, ok := d.(*Endpoint); ok {
			return data, found
		}
	}
	return nil, false
}

// LookupHost performs lookup based on secondary index host.
func (ei *Index) LookupHost(hostname string) (keys []string) {
	return ei.mapping.ListNames(hostKey, hostname)
}

// LookupOrchestrator performs lookup based on secondary index orchestrator.
func (ei *Index) LookupOrchestrator(orchestrator string) (keys []string) {
	return ei.mapping.ListNames(orchestratorKey, orchestrator)
}

// ListAll returns all registered keys in the mapping.
func (ei *Index) ListAll() (keys []string) {
	return ei.mapping.ListAllNames()
}

// Watch subscribe to monitor changes in Index
func (ei *Index) Watch(subscriber string, callback func(ChangeEvent)) error {
	return ei.mapping.Watch(subscriber, func(ev idxmap.NamedMappingGenericEvent) {
		if ep, ok := ev.Value.(*Endpoint); ok {
			callback(ChangeEvent{NamedMappingEvent: ev.NamedMappingEvent, Value: ep})
		}
	})
}

// IndexFunction creates secondary indexes. The host and the orchestrator of
// the endpoint are indexed.
func IndexFunction(data interface{}) map[string][]string {
	res := map[string][]string{}
	if ep, ok := data.(*Endpoint); ok && ep != nil {
		res[hostKey] = []string{ep.ID.Host}
		res[orchestratorKey] = []string{ep.ID.Orchestrator}
	}
	return res
}

// ToChan creates a callback that can be passed to the Watch function
// in order to receive notifications through a channel. If the notification
// can not be delivered until timeout, it is dropped.
func ToChan(ch chan ChangeEvent) func(dto ChangeEvent) {
	return func(dto ChangeEvent) {
		select {
		case ch <- dto:
		case <-time.After(time.Second):
		}
	}
}
