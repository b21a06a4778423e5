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
	"sync/atomic"

	model "github.com/projectcalico/datamodel/model/v1"
)

// Stats counts consumed events and dispatched updates. Counters are
// cumulative and safe for concurrent reads while the watcher runs.
type Stats struct {
	changeEvents uint64
	resyncEvents uint64
	ignoredKeys  uint64
	resources    map[string]*resourceCounters
}

// resourceCounters holds the per-resource counters; the key set is fixed at
// construction.
type resourceCounters struct {
	dispatched uint64
	errors     uint64
}

// NewStats returns counters pre-allocated for every known resource kind.
func NewStats() *Stats {
	s := &Stats{
		resources: make(map[string]*resourceCounters),
	}
	for _, resource := range model.Resources() {
		s.resources[resource.Keyword] = &resourceCounters{}
	}
	return s
}

func (s *Stats) countChangeEvent() {
	atomic.AddUint64(&s.changeEvents, 1)
}

func (s *Stats) countResyncEvent() {
	atomic.AddUint64(&s.resyncEvents, 1)
}

func (s *Stats) countIgnoredKey() {
	atomic.AddUint64(&s.ignoredKeys, 1)
}

func (s *Stats) countDispatched(keyword string) {
	if counters, found := s.resources[keyword]; found {
		atomic.AddUint64(&counters.dispatched, 1)
	}
}

func (s *Stats) countError(keyword string) {
	if counters, found := s.resources[keyword]; found {
		atomic.AddUint64(&counters.errors, 1)
	}
}

// Snapshot is a point-in-time copy of the watcher counters.
type Snapshot struct {
	ChangeEvents uint64
	ResyncEvents uint64
	IgnoredKeys  uint64
	Dispatched   map[string]uint64 // resource keyword -> updates handed over
	Errors       map[string]uint64 // resource keyword -> processor failures
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() *Snapshot {
	snap := &Snapshot{
		ChangeEvents: atomic.LoadUint64(&s.changeEvents),
		ResyncEvents: atomic.LoadUint64(&s.resyncEvents),
		IgnoredKeys:  atomic.LoadUint64(&s.ignoredKeys),
		Dispatched:   make(map[string]uint64),
		Errors:       make(map[string]uint64),
	}
	for keyword, counters := range s.resources {
		snap.Dispatched[keyword] = atomic.LoadUint64(&counters.dispatched)
		snap.Errors[keyword] = atomic.LoadUint64(&counters.errors)
	}
	return snap
}
