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

package v1

import (
	"hash/fnv"

	"github.com/projectcalico/datamodel/pkg/strpool"
)

// EndpointID identifies a workload endpoint across all hosts and
// orchestrators.  Two IDs are equal iff all four fields are equal; the
// struct is comparable and safe to use as a map key.  EndpointID values are
// treated as immutable once built.
type EndpointID struct {
	Host         string
	Orchestrator string
	Workload     string
	Endpoint     string
}

// Intern returns a copy of the ID with every field canonicalized through
// the given pool.  The host and orchestrator repeat for all endpoints on a
// host and the other fields repeat over time, so decoders that retain many
// IDs should intern them to share the backing strings.
func (id EndpointID) Intern(pool *strpool.Pool) EndpointID {
	return EndpointID{
		Host:         pool.Intern(id.Host),
		Orchestrator: pool.Intern(id.Orchestrator),
		Workload:     pool.Intern(id.Workload),
		Endpoint:     pool.Intern(id.Endpoint),
	}
}

// PathForStatus returns the key under which felix reports the operational
// status of this endpoint.  Equal to KeyForEndpointStatus over the same
// fields.
func (id EndpointID) PathForStatus() string {
	return KeyForEndpointStatus(id.Host, id.Orchestrator, id.Workload, id.Endpoint)
}

// Hash returns a hash of the ID suitable for sharding endpoints across
// workers.  Only the Endpoint and Workload fields contribute; equality
// still covers all four fields.
func (id EndpointID) Hash() uint64 {
	return hashString(id.Endpoint) + hashString(id.Workload)
}

func (id EndpointID) String() string {
	return "EndpointID<" + id.Endpoint + ">"
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
