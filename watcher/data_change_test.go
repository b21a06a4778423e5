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
	"testing"

	"github.com/ligato/cn-infra/datasync"
	"github.com/ligato/cn-infra/logging/logrus"
	"github.com/onsi/gomega"

	model "github.com/projectcalico/datamodel/model/v1"
	"github.com/projectcalico/datamodel/pkg/strpool"
)

func classifyTestWatcher() *Watcher {
	return &Watcher{
		Deps: Deps{
			Log:   logrus.DefaultLogger(),
			Stats: NewStats(),
			Pool:  strpool.New(),
		},
	}
}

func TestClassifyEndpointKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	w := classifyTestWatcher()
	wantID := model.EndpointID{
		Host:         "host-1",
		Orchestrator: "openstack",
		Workload:     "wl-0090",
		Endpoint:     "ep-49aa",
	}

	update, ok := w.classify(
		model.KeyForEndpoint("host-1", "openstack", "wl-0090", "ep-49aa"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	epUpdate, isEndpoint := update.(*EndpointUpdate)
	gomega.Expect(isEndpoint).To(gomega.BeTrue())
	gomega.Expect(epUpdate.ID).To(gomega.Equal(wantID))
	gomega.Expect(epUpdate.Keyword()).To(gomega.Equal(model.EndpointKeyword))
	gomega.Expect(epUpdate.String()).To(gomega.ContainSubstring("EndpointID<ep-49aa>"))

	// The same endpoint shape under the felix status tree is a status update.
	update, ok = w.classify(
		model.KeyForEndpointStatus("host-1", "openstack", "wl-0090", "ep-49aa"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	statusUpdate, isStatus := update.(*EndpointStatusUpdate)
	gomega.Expect(isStatus).To(gomega.BeTrue())
	gomega.Expect(statusUpdate.ID).To(gomega.Equal(wantID))
	gomega.Expect(statusUpdate.Keyword()).To(gomega.Equal(model.EndpointStatusKeyword))

	// Both identifiers share one canonical copy of each field.
	gomega.Expect(w.Pool.Len()).To(gomega.Equal(4))
}

func TestClassifyProfileKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	w := classifyTestWatcher()

	update, ok := w.classify(model.KeyForProfileRules("prof-A"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	rulesUpdate, isRules := update.(*ProfileRulesUpdate)
	gomega.Expect(isRules).To(gomega.BeTrue())
	gomega.Expect(rulesUpdate.ProfileID).To(gomega.Equal("prof-A"))

	update, ok = w.classify(model.KeyForProfileTags("prof-A"), datasync.Delete, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	tagsUpdate, isTags := update.(*ProfileTagsUpdate)
	gomega.Expect(isTags).To(gomega.BeTrue())
	gomega.Expect(tagsUpdate.ProfileID).To(gomega.Equal("prof-A"))
	gomega.Expect(tagsUpdate.Op).To(gomega.Equal(datasync.Delete))

	update, ok = w.classify(model.KeyForProfile("prof-A"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	profileUpdate, isProfile := update.(*ProfileUpdate)
	gomega.Expect(isProfile).To(gomega.BeTrue())
	gomega.Expect(profileUpdate.ProfileID).To(gomega.Equal("prof-A"))
}

func TestClassifyHostAndGlobalKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	w := classifyTestWatcher()

	update, ok := w.classify(model.ReadyKey, datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	gomega.Expect(update.Keyword()).To(gomega.Equal(model.ReadyKeyword))

	update, ok = w.classify(model.KeyForHostIP("host-1"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	ipUpdate, isIP := update.(*HostIPUpdate)
	gomega.Expect(isIP).To(gomega.BeTrue())
	gomega.Expect(ipUpdate.Hostname).To(gomega.Equal("host-1"))

	update, ok = w.classify(model.KeyForConfig("InterfacePrefix"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	cfgUpdate, isCfg := update.(*ConfigUpdate)
	gomega.Expect(isCfg).To(gomega.BeTrue())
	gomega.Expect(cfgUpdate.Name).To(gomega.Equal("InterfacePrefix"))

	update, ok = w.classify(model.KeyForHostConfig("host-1", "LogSeverityFile"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	hostCfgUpdate, isHostCfg := update.(*HostConfigUpdate)
	gomega.Expect(isHostCfg).To(gomega.BeTrue())
	gomega.Expect(hostCfgUpdate.Hostname).To(gomega.Equal("host-1"))
	gomega.Expect(hostCfgUpdate.Name).To(gomega.Equal("LogSeverityFile"))

	update, ok = w.classify(model.PoolV4Dir+"/10.1.0.0-16", datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	poolUpdate, isPool := update.(*PoolUpdate)
	gomega.Expect(isPool).To(gomega.BeTrue())
	gomega.Expect(poolUpdate.EncodedCIDR).To(gomega.Equal("10.1.0.0-16"))
}

func TestClassifyFelixStatusKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	w := classifyTestWatcher()

	update, ok := w.classify(model.KeyForStatus("host-1"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	statusUpdate, isStatus := update.(*FelixStatusUpdate)
	gomega.Expect(isStatus).To(gomega.BeTrue())
	gomega.Expect(statusUpdate.Hostname).To(gomega.Equal("host-1"))
	gomega.Expect(statusUpdate.Last).To(gomega.BeFalse())

	update, ok = w.classify(model.KeyForLastStatus("host-1"), datasync.Put, nil)
	gomega.Expect(ok).To(gomega.BeTrue())
	statusUpdate, isStatus = update.(*FelixStatusUpdate)
	gomega.Expect(isStatus).To(gomega.BeTrue())
	gomega.Expect(statusUpdate.Hostname).To(gomega.Equal("host-1"))
	gomega.Expect(statusUpdate.Last).To(gomega.BeTrue())
}

func TestClassifyUnknownKeys(t *testing.T) {
	gomega.RegisterTestingT(t)

	w := classifyTestWatcher()

	unknown := []string{
		"",
		"/",
		"/calico",
		"/calico/v1",
		"/calico/v1/host/host-1",
		"/calico/v1/host/host-1/config",
		"/calico/v1/policy/profile",
		"/calico/felix/v1/host/host-1",
		"/unrelated/key",
	}
	for _, key := range unknown {
		_, ok := w.classify(key, datasync.Put, nil)
		gomega.Expect(ok).To(gomega.BeFalse(), "key %s should not classify", key)
	}
}
