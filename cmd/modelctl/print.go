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

package main

import (
	"fmt"
	"io"
	"net"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/projectcalico/datamodel/ipam"
	model "github.com/projectcalico/datamodel/model/v1"
)

const unknownKind = "unknown"

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
}

// explainKeys prints one classification row per key.
func explainKeys(out io.Writer, keys []string) {
	w := newTabWriter(out)
	fmt.Fprintf(w, "KEY\tKIND\tFIELDS\n")
	for _, key := range keys {
		kind, fields := classifyKey(key)
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, kind, fields)
	}
	w.Flush()
}

// classifyKey names the shape of the given key and renders the fields it
// captures.  Keys of no known shape report the unknown kind.
func classifyKey(key string) (kind string, fields string) {
	if model.IsReadyFlagKey(key) {
		return model.ReadyKeyword, "-"
	}
	if epID := model.EndpointIDFromKey(key); epID != nil {
		fields := fmt.Sprintf("hostname=%s orchestrator=%s workload=%s endpoint=%s",
			epID.Host, epID.Orchestrator, epID.Workload, epID.Endpoint)
		if strings.HasPrefix(key, model.FelixStatusDir) {
			return model.EndpointStatusKeyword, fields
		}
		return model.EndpointKeyword, fields
	}
	if profileID, ok := model.ProfileIDFromRulesKey(key); ok {
		return model.ProfileRulesKeyword, "profile=" + profileID
	}
	if profileID, ok := model.ProfileIDFromTagsKey(key); ok {
		return model.ProfileTagsKeyword, "profile=" + profileID
	}
	if profileID, ok := model.ProfileIDFromProfileDir(key); ok {
		return model.ProfileKeyword, "profile=" + profileID
	}
	if hostname, ok := model.HostnameFromHostIPKey(key); ok {
		return model.HostIPKeyword, "hostname=" + hostname
	}
	if hostname, configName, ok := model.HostConfigFromKey(key); ok {
		return model.HostConfigKeyword, fmt.Sprintf("hostname=%s name=%s", hostname, configName)
	}
	if configName, ok := model.ConfigNameFromKey(key); ok {
		return model.ConfigKeyword, "name=" + configName
	}
	if encoded, ok := model.EncodedCIDRFromPoolKey(key); ok {
		if network, err := ipam.DecodeCIDR(encoded); err == nil {
			return model.PoolKeyword, "cidr=" + network.String()
		}
		return model.PoolKeyword, "encoded=" + encoded
	}
	if hostname, ok := model.HostnameFromStatusKey(key); ok {
		return model.FelixStatusKeyword, "hostname=" + hostname
	}
	if hostname, ok := model.HostnameFromLastStatusKey(key); ok {
		return model.FelixStatusKeyword, fmt.Sprintf("hostname=%s last=true", hostname)
	}
	return unknownKind, "-"
}

// printEndpointKeys prints the live and the status key of one endpoint.
func printEndpointKeys(out io.Writer, hostname, orchestrator, workload, endpoint string) {
	w := newTabWriter(out)
	fmt.Fprintf(w, "endpoint\t%s\n", model.KeyForEndpoint(hostname, orchestrator, workload, endpoint))
	fmt.Fprintf(w, "status\t%s\n", model.KeyForEndpointStatus(hostname, orchestrator, workload, endpoint))
	w.Flush()
}

// printProfileKeys prints the directory and the item keys of one profile.
func printProfileKeys(out io.Writer, profileID string) {
	w := newTabWriter(out)
	fmt.Fprintf(w, "profile\t%s\n", model.KeyForProfile(profileID))
	fmt.Fprintf(w, "rules\t%s\n", model.KeyForProfileRules(profileID))
	fmt.Fprintf(w, "tags\t%s\n", model.KeyForProfileTags(profileID))
	w.Flush()
}

// printHostKeys prints the directories and keys belonging to one host.
func printHostKeys(out io.Writer, hostname string) {
	w := newTabWriter(out)
	fmt.Fprintf(w, "dir\t%s\n", model.DirForHost(hostname))
	fmt.Fprintf(w, "config-dir\t%s\n", model.DirForPerHostConfig(hostname))
	fmt.Fprintf(w, "bird_ip\t%s\n", model.KeyForHostIP(hostname))
	fmt.Fprintf(w, "status\t%s\n", model.KeyForStatus(hostname))
	fmt.Fprintf(w, "last-status\t%s\n", model.KeyForLastStatus(hostname))
	w.Flush()
}

// printConfigKey prints the global key of the parameter, or the per-host
// override key when a hostname is given.
func printConfigKey(out io.Writer, configName, hostname string) {
	w := newTabWriter(out)
	if hostname == "" {
		fmt.Fprintf(w, "config\t%s\n", model.KeyForConfig(configName))
	} else {
		fmt.Fprintf(w, "config\t%s\n", model.KeyForHostConfig(hostname, configName))
	}
	w.Flush()
}

// printPool prints the key and the address range of the IPv4 pool.
func printPool(out io.Writer, poolCIDR string) error {
	_, network, err := net.ParseCIDR(poolCIDR)
	if err != nil {
		return errors.Errorf("invalid pool CIDR %s", poolCIDR)
	}
	first, last := ipam.PoolRange(network)
	w := newTabWriter(out)
	fmt.Fprintf(w, "pool\t%s\n", ipam.PoolKey(network))
	fmt.Fprintf(w, "first\t%s\n", first)
	fmt.Fprintf(w, "last\t%s\n", last)
	fmt.Fprintf(w, "size\t%d\n", ipam.PoolSize(network))
	w.Flush()
	return nil
}

// printResources prints the table of v1 resource kinds.
func printResources(out io.Writer) {
	w := newTabWriter(out)
	fmt.Fprintf(w, "KEYWORD\tPREFIX\tDESCRIPTION\n")
	for _, resource := range model.Resources() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", resource.Keyword, resource.KeyPrefix, resource.Description)
	}
	w.Flush()
}
