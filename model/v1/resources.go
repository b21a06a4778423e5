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

// Keywords identifying the resource kinds stored under the v1 schema.  They
// label stats and CLI output and never appear in keys themselves.
const (
	ReadyKeyword          = "ready"
	ConfigKeyword         = "config"
	HostConfigKeyword     = "host-config"
	HostIPKeyword         = "host-ip"
	EndpointKeyword       = "endpoint"
	EndpointStatusKeyword = "endpoint-status"
	ProfileKeyword        = "profile"
	ProfileRulesKeyword   = "profile-rules"
	ProfileTagsKeyword    = "profile-tags"
	PoolKeyword           = "pool"
	FelixStatusKeyword    = "felix-status"
)

// Resource describes one kind of item stored under the v1 schema.
type Resource struct {
	// Keyword is the short name of the resource kind.
	Keyword string
	// KeyPrefix is the directory under which items of this kind live.
	// Prefixes of different kinds may overlap.
	KeyPrefix string
	// Description is a one-line summary for humans.
	Description string
}

// Resources returns metadata for all resource kinds stored under the v1
// schema.
func Resources() []*Resource {
	return []*Resource{
		{
			Keyword:     ReadyKeyword,
			KeyPrefix:   ReadyKey,
			Description: "global ready flag",
		},
		{
			Keyword:     ConfigKeyword,
			KeyPrefix:   ConfigDir,
			Description: "global config parameters",
		},
		{
			Keyword:     HostConfigKeyword,
			KeyPrefix:   HostDir,
			Description: "per-host config overrides",
		},
		{
			Keyword:     HostIPKeyword,
			KeyPrefix:   HostDir,
			Description: "per-host peering IPs",
		},
		{
			Keyword:     EndpointKeyword,
			KeyPrefix:   HostDir,
			Description: "workload endpoint configuration",
		},
		{
			Keyword:     ProfileKeyword,
			KeyPrefix:   ProfileDir,
			Description: "security profiles",
		},
		{
			Keyword:     ProfileRulesKeyword,
			KeyPrefix:   ProfileDir,
			Description: "security profile rules",
		},
		{
			Keyword:     ProfileTagsKeyword,
			KeyPrefix:   ProfileDir,
			Description: "security profile tags",
		},
		{
			Keyword:     PoolKeyword,
			KeyPrefix:   PoolV4Dir,
			Description: "IPv4 IPAM pools",
		},
		{
			Keyword:     FelixStatusKeyword,
			KeyPrefix:   FelixStatusDir,
			Description: "felix status reports",
		},
		{
			Keyword:     EndpointStatusKeyword,
			KeyPrefix:   FelixStatusDir,
			Description: "workload endpoint status reports",
		},
	}
}

// WatchPrefixes returns the minimal set of key prefixes that together cover
// every resource of the v1 schema.  Watching these prefixes yields all v1
// change events.
func WatchPrefixes() []string {
	return []string{VersionDir + "/", FelixStatusDir + "/"}
}
