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
	"testing"

	"github.com/onsi/gomega"
)

func TestEndpointKeyMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	want := EndpointID{
		Host:         "host-1",
		Orchestrator: "openstack",
		Workload:     "wl-0090",
		Endpoint:     "ep-49aa",
	}

	id := EndpointIDFromKey("/calico/v1/host/host-1/workload/openstack/wl-0090/endpoint/ep-49aa")
	gomega.Expect(id).NotTo(gomega.BeNil())
	gomega.Expect(*id).To(gomega.Equal(want))

	// The same matcher accepts the status flavour of the key.
	id = EndpointIDFromKey("/calico/felix/v1/host/host-1/workload/openstack/wl-0090/endpoint/ep-49aa")
	gomega.Expect(id).NotTo(gomega.BeNil())
	gomega.Expect(*id).To(gomega.Equal(want))

	// Content after the matched shape does not prevent a match.
	id = EndpointIDFromKey("/calico/v1/host/host-1/workload/openstack/wl-0090/endpoint/ep-49aa/extra")
	gomega.Expect(id).NotTo(gomega.BeNil())
	gomega.Expect(id.Endpoint).To(gomega.Equal("ep-49aa"))

	gomega.Expect(EndpointIDFromKey("/calico/v1/host/host-1/bird_ip")).To(gomega.BeNil())
	gomega.Expect(EndpointIDFromKey("/calico/v1/host/host-1/workload/openstack")).To(gomega.BeNil())
	gomega.Expect(EndpointIDFromKey("/calico/v1/policy/profile/prof-A")).To(gomega.BeNil())
	gomega.Expect(EndpointIDFromKey("")).To(gomega.BeNil())
}

func TestProfileRulesAndTagsMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	profileID, ok := ProfileIDFromRulesKey("/calico/v1/policy/profile/prof-A/rules")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))

	profileID, ok = ProfileIDFromTagsKey("/calico/v1/policy/profile/prof-A/tags")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))

	// Rules of one profile are not tags and vice versa.
	_, ok = ProfileIDFromRulesKey("/calico/v1/policy/profile/prof-A/tags")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = ProfileIDFromTagsKey("/calico/v1/policy/profile/prof-A/rules")
	gomega.Expect(ok).To(gomega.BeFalse())

	// A profile ID never spans path segments.
	_, ok = ProfileIDFromRulesKey("/calico/v1/policy/profile/prof/A/rules")
	gomega.Expect(ok).To(gomega.BeFalse())

	// Content after the matched shape does not prevent a match.
	profileID, ok = ProfileIDFromRulesKey("/calico/v1/policy/profile/prof-A/rules/extra")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))
}

func TestProfileDirMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	profileID, ok := ProfileIDFromProfileDir("/calico/v1/policy/profile/prof-A")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))

	// Trailing slashes are stripped before matching.
	profileID, ok = ProfileIDFromProfileDir("/calico/v1/policy/profile/prof-A/")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))

	profileID, ok = ProfileIDFromProfileDir("/calico/v1/policy/profile/prof-A///")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(profileID).To(gomega.Equal("prof-A"))

	// Deeper keys are not the profile directory itself.
	_, ok = ProfileIDFromProfileDir("/calico/v1/policy/profile/prof-A/rules")
	gomega.Expect(ok).To(gomega.BeFalse())

	// Neither is the profile root or anything above it.
	_, ok = ProfileIDFromProfileDir("/calico/v1/policy/profile")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = ProfileIDFromProfileDir("/calico/v1/policy")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = ProfileIDFromProfileDir("no-slashes-here")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestHostIPKeyMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	hostname, ok := HostnameFromHostIPKey("/calico/v1/host/host-1/bird_ip")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(hostname).To(gomega.Equal("host-1"))

	_, ok = HostnameFromHostIPKey("/calico/v1/host/host-1/config/bird_ip")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = HostnameFromHostIPKey("/calico/v1/host/host-1")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestPoolKeyMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	encoded, ok := EncodedCIDRFromPoolKey("/calico/v1/ipam/v4/pool/10.1.0.0-16")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(encoded).To(gomega.Equal("10.1.0.0-16"))

	_, ok = EncodedCIDRFromPoolKey("/calico/v1/ipam/v4/pool")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = EncodedCIDRFromPoolKey("/calico/v1/ipam/v6/pool/fd00--8")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestConfigKeyMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	configName, ok := ConfigNameFromKey("/calico/v1/config/InterfacePrefix")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(configName).To(gomega.Equal("InterfacePrefix"))

	// Only the first segment below the config dir names the parameter.
	configName, ok = ConfigNameFromKey("/calico/v1/config/InterfacePrefix/extra")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(configName).To(gomega.Equal("InterfacePrefix"))

	_, ok = ConfigNameFromKey("/calico/v1/config")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = ConfigNameFromKey("/calico/v1/host/host-1/config/InterfacePrefix")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestHostConfigKeyMatch(t *testing.T) {
	gomega.RegisterTestingT(t)

	hostname, configName, ok := HostConfigFromKey("/calico/v1/host/host-1/config/InterfacePrefix")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(hostname).To(gomega.Equal("host-1"))
	gomega.Expect(configName).To(gomega.Equal("InterfacePrefix"))

	_, _, ok = HostConfigFromKey("/calico/v1/host/host-1/config")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, _, ok = HostConfigFromKey("/calico/v1/config/InterfacePrefix")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestStatusKeyHostname(t *testing.T) {
	gomega.RegisterTestingT(t)

	hostname, ok := HostnameFromStatusKey("/calico/felix/v1/host/host-1/status")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(hostname).To(gomega.Equal("host-1"))

	// The hostname is the first segment below the status root, whatever
	// path leads to the "/status" leaf.
	hostname, ok = HostnameFromStatusKey("/calico/felix/v1/host/host-1/some/path/status")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(hostname).To(gomega.Equal("host-1"))

	_, ok = HostnameFromStatusKey("/calico/felix/v1/host/host-1/last_reported_status")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = HostnameFromStatusKey("/calico/v1/host/host-1/status")
	gomega.Expect(ok).To(gomega.BeFalse())
	_, ok = HostnameFromStatusKey("/calico/felix/v1/host/host-1/uptime")
	gomega.Expect(ok).To(gomega.BeFalse())

	hostname, ok = HostnameFromLastStatusKey("/calico/felix/v1/host/host-1/last_reported_status")
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(hostname).To(gomega.Equal("host-1"))

	_, ok = HostnameFromLastStatusKey("/calico/felix/v1/host/host-1/status")
	gomega.Expect(ok).To(gomega.BeFalse())
}

func TestReadyFlagKey(t *testing.T) {
	gomega.RegisterTestingT(t)

	gomega.Expect(IsReadyFlagKey("/calico/v1/Ready")).To(gomega.BeTrue())
	gomega.Expect(IsReadyFlagKey("/calico/v1/ready")).To(gomega.BeFalse())
	gomega.Expect(IsReadyFlagKey("/calico/v1/Ready/")).To(gomega.BeFalse())
}
