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
	"regexp"
	"strings"
)

// The patterns are anchored at the start of the key only; content after the
// matched shape does not prevent a match.
var (
	rulesKeyRE = regexp.MustCompile(
		"^" + ProfileDir + "/([^/]+)/rules")
	tagsKeyRE = regexp.MustCompile(
		"^" + ProfileDir + "/([^/]+)/tags")
	endpointKeyRE = regexp.MustCompile(
		"^(?:" + HostDir + "|" + FelixStatusDir + ")" +
			"/([^/]+)/workload/([^/]+)/([^/]+)/endpoint/([^/]+)")
	hostIPKeyRE = regexp.MustCompile(
		"^" + HostDir + "/([^/]+)/bird_ip")
	ipamV4PoolKeyRE = regexp.MustCompile(
		"^" + PoolV4Dir + "/([^/]+)")
	configKeyRE = regexp.MustCompile(
		"^" + ConfigDir + "/([^/]+)")
	hostConfigKeyRE = regexp.MustCompile(
		"^" + HostDir + "/([^/]+)/config/([^/]+)")
)

// ProfileIDFromRulesKey returns the profile ID if the given key holds the
// rules of a profile.
func ProfileIDFromRulesKey(key string) (profileID string, ok bool) {
	m := rulesKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ProfileIDFromTagsKey returns the profile ID if the given key holds the
// tags of a profile.
func ProfileIDFromTagsKey(key string) (profileID string, ok bool) {
	m := tagsKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ProfileIDFromProfileDir returns the profile ID if the given key is the
// directory of a profile.  Trailing slashes are ignored.
func ProfileIDFromProfileDir(key string) (profileID string, ok bool) {
	key = strings.TrimRight(key, "/")
	idx := strings.LastIndex(key, "/")
	if idx < 0 || key[:idx] != ProfileDir {
		return "", false
	}
	return key[idx+1:], true
}

// EndpointIDFromKey returns the endpoint ID embedded in the given key, which
// may be either an endpoint configuration key or an endpoint status key.
// Returns nil if the key does not name an endpoint.
func EndpointIDFromKey(key string) *EndpointID {
	m := endpointKeyRE.FindStringSubmatch(key)
	if m == nil {
		return nil
	}
	return &EndpointID{
		Host:         m[1],
		Orchestrator: m[2],
		Workload:     m[3],
		Endpoint:     m[4],
	}
}

// HostnameFromHostIPKey returns the hostname if the given key publishes the
// peering IP of a host.
func HostnameFromHostIPKey(key string) (hostname string, ok bool) {
	m := hostIPKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EncodedCIDRFromPoolKey returns the encoded CIDR segment if the given key
// names an IPv4 IPAM pool.  The segment is returned as stored in the key;
// decoding it into a network is up to the caller.
func EncodedCIDRFromPoolKey(key string) (encodedCIDR string, ok bool) {
	m := ipamV4PoolKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ConfigNameFromKey returns the parameter name if the given key holds a
// global config parameter.
func ConfigNameFromKey(key string) (configName string, ok bool) {
	m := configKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// HostConfigFromKey returns the hostname and parameter name if the given key
// holds a per-host config parameter.
func HostConfigFromKey(key string) (hostname string, configName string, ok bool) {
	m := hostConfigKeyRE.FindStringSubmatch(key)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// HostnameFromStatusKey returns the hostname embedded in a felix status key.
// A status key is any key under FelixStatusDir ending with "/status"; the
// hostname is the first path segment below FelixStatusDir.
func HostnameFromStatusKey(key string) (hostname string, ok bool) {
	if !strings.HasPrefix(key, FelixStatusDir) || !strings.HasSuffix(key, "/status") {
		return "", false
	}
	inHostDir := key[len(FelixStatusDir+"/"):]
	return strings.SplitN(inHostDir, "/", 2)[0], true
}

// HostnameFromLastStatusKey returns the hostname embedded in a felix
// last-reported-status key, with the same shape rules as
// HostnameFromStatusKey.
func HostnameFromLastStatusKey(key string) (hostname string, ok bool) {
	if !strings.HasPrefix(key, FelixStatusDir) || !strings.HasSuffix(key, "/last_reported_status") {
		return "", false
	}
	inHostDir := key[len(FelixStatusDir+"/"):]
	return strings.SplitN(inHostDir, "/", 2)[0], true
}

// IsReadyFlagKey reports whether the given key is the global ready flag.
func IsReadyFlagKey(key string) bool {
	return key == ReadyKey
}
