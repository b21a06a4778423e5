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

const (
	// RootDir is the directory under which all Calico data is stored.
	RootDir = "/calico"

	// FelixVersion is the current schema version of the policy-data subtree.
	FelixVersion = "/v1"
	// OpenStackVersion is the current schema version of the OpenStack subtree.
	OpenStackVersion = "/v1"

	// OpenStackDir is the directory holding OpenStack-sourced data.
	OpenStackDir = RootDir + "/openstack"
	// OpenStackVersionDir is the versioned OpenStack subtree.
	OpenStackVersionDir = OpenStackDir + OpenStackVersion

	// FelixStatusDir is the directory under which felix instances report
	// their own status and the status of their endpoints.
	FelixStatusDir = RootDir + "/felix" + FelixVersion + "/host"

	// VersionDir is the versioned subtree holding the data that flows from
	// the orchestrator to felix.
	VersionDir = RootDir + FelixVersion
	// ReadyKey is the global ready flag.  Stores "true" or "false".
	ReadyKey = VersionDir + "/Ready"
	// ConfigDir is the directory holding global config parameters.
	ConfigDir = VersionDir + "/config"
	// HostDir is the directory holding per-host configuration.
	HostDir = VersionDir + "/host"
	// PolicyDir is the directory holding policy data.
	PolicyDir = VersionDir + "/policy"
	// ProfileDir is the directory holding security profiles.
	ProfileDir = PolicyDir + "/profile"
	// PoolV4Dir is the directory holding IPv4 IPAM pools.
	PoolV4Dir = VersionDir + "/ipam/v4/pool"

	// NeutronElectionKey is the key used for leader election by Neutron
	// mechanism drivers.
	NeutronElectionKey = OpenStackVersionDir + "/neutron_election"
)

// Operational states that felix reports for an endpoint.
const (
	EndpointStatusUp    = "up"
	EndpointStatusDown  = "down"
	EndpointStatusError = "error"
)

// DirForHost returns the directory holding the configuration of a given host.
func DirForHost(hostname string) string {
	return HostDir + "/" + hostname
}

// DirForPerHostConfig returns the directory holding the per-host config
// overrides of a given host.
func DirForPerHostConfig(hostname string) string {
	return DirForHost(hostname) + "/config"
}

// DirForFelixStatus returns the directory under which the felix instance on
// a given host reports its status.
func DirForFelixStatus(hostname string) string {
	return FelixStatusDir + "/" + hostname
}

// KeyForStatus returns the key under which the felix instance on a given
// host reports its current status.
func KeyForStatus(hostname string) string {
	return DirForFelixStatus(hostname) + "/status"
}

// KeyForLastStatus returns the key holding the last status report persisted
// by the felix instance on a given host.
func KeyForLastStatus(hostname string) string {
	return DirForFelixStatus(hostname) + "/last_reported_status"
}

// KeyForEndpoint returns the key under which a given workload endpoint is
// configured.
func KeyForEndpoint(host string, orchestrator string, workloadID string, endpointID string) string {
	return HostDir + "/" + host + "/workload/" + orchestrator + "/" + workloadID +
		"/endpoint/" + endpointID
}

// KeyForEndpointStatus returns the key under which felix reports the
// operational status of a given workload endpoint.
func KeyForEndpointStatus(host string, orchestrator string, workloadID string, endpointID string) string {
	return FelixStatusDir + "/" + host + "/workload/" + orchestrator + "/" + workloadID +
		"/endpoint/" + endpointID
}

// KeyForProfile returns the directory holding a given security profile.
func KeyForProfile(profileID string) string {
	return ProfileDir + "/" + profileID
}

// KeyForProfileRules returns the key holding the rules of a given profile.
func KeyForProfileRules(profileID string) string {
	return ProfileDir + "/" + profileID + "/rules"
}

// KeyForProfileTags returns the key holding the tags of a given profile.
func KeyForProfileTags(profileID string) string {
	return ProfileDir + "/" + profileID + "/tags"
}

// KeyForConfig returns the key holding a given global config parameter.
func KeyForConfig(configName string) string {
	return ConfigDir + "/" + configName
}

// KeyForHostConfig returns the key holding a given per-host config
// parameter.  Per-host values override their global counterparts.
func KeyForHostConfig(hostname string, configName string) string {
	return DirForPerHostConfig(hostname) + "/" + configName
}

// KeyForHostIP returns the key under which a given host publishes the IP
// address it peers from.
func KeyForHostIP(hostname string) string {
	return DirForHost(hostname) + "/bird_ip"
}
