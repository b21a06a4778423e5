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
	"fmt"

	"github.com/ligato/cn-infra/datasync"

	model "github.com/projectcalico/datamodel/model/v1"
)

// Processor receives classified updates from the watcher. Values stay opaque
// on the way through; implementations decode the ones they care about from
// the attached key-value pair.
type Processor interface {
	// ProcessUpdate is called for every recognized key change, in delivery
	// order.
	ProcessUpdate(update Update) error

	// Resync replaces the processor view with a full classified snapshot of
	// the watched subtrees.
	Resync(data *ResyncData) error
}

// Update is a single classified change of one key in the v1 tree.
type Update interface {
	// Keyword names the resource kind, matching one of Resources().
	Keyword() string

	// String describes the update for logging.
	String() string
}

// ResyncData groups a snapshot of the watched subtrees by resource keyword.
// Every update carries Op Put; deletions are implied by absence.
type ResyncData struct {
	Updates map[string][]Update
	Ignored int // snapshot keys that matched no known shape
}

// ReadyUpdate is a change of the global Ready flag.
type ReadyUpdate struct {
	Key   string
	Op    datasync.Op
	Value datasync.KeyVal
}

func (u *ReadyUpdate) Keyword() string {
	return model.ReadyKeyword
}

func (u *ReadyUpdate) String() string {
	return fmt.Sprintf("ready flag (%v)", u.Op)
}

// ConfigUpdate is a change of one global config entry.
type ConfigUpdate struct {
	Key   string
	Name  string
	Op    datasync.Op
	Value datasync.KeyVal
}

func (u *ConfigUpdate) Keyword() string {
	return model.ConfigKeyword
}

func (u *ConfigUpdate) String() string {
	return fmt.Sprintf("global config %s (%v)", u.Name, u.Op)
}

// HostConfigUpdate is a change of one per-host config entry.
type HostConfigUpdate struct {
	Key      string
	Hostname string
	Name     string
	Op       datasync.Op
	Value    datasync.KeyVal
}

func (u *HostConfigUpdate) Keyword() string {
	return model.HostConfigKeyword
}

func (u *HostConfigUpdate) String() string {
	return fmt.Sprintf("config %s for host %s (%v)", u.Name, u.Hostname, u.Op)
}

// HostIPUpdate is a change of the IP address advertised for a host.
type HostIPUpdate struct {
	Key      string
	Hostname string
	Op       datasync.Op
	Value    datasync.KeyVal
}

func (u *HostIPUpdate) Keyword() string {
	return model.HostIPKeyword
}

func (u *HostIPUpdate) String() string {
	return fmt.Sprintf("IP of host %s (%v)", u.Hostname, u.Op)
}

// EndpointUpdate is a change of a workload endpoint in the live tree.
type EndpointUpdate struct {
	Key   string
	ID    model.EndpointID
	Op    datasync.Op
	Value datasync.KeyVal
}

func (u *EndpointUpdate) Keyword() string {
	return model.EndpointKeyword
}

func (u *EndpointUpdate) String() string {
	return fmt.Sprintf("%v (%v)", u.ID, u.Op)
}

// EndpointStatusUpdate is a change of an endpoint entry in the felix status
// tree.
type EndpointStatusUpdate struct {
	Key   string
	ID    model.EndpointID
	Op    datasync.Op
	Value datasync.KeyVal
}

func (u *EndpointStatusUpdate) Keyword() string {
	return model.EndpointStatusKeyword
}

func (u *EndpointStatusUpdate) String() string {
	return fmt.Sprintf("status of %v (%v)", u.ID, u.Op)
}

// ProfileUpdate is a change of a profile directory node.
type ProfileUpdate struct {
	Key       string
	ProfileID string
	Op        datasync.Op
	Value     datasync.KeyVal
}

func (u *ProfileUpdate) Keyword() string {
	return model.ProfileKeyword
}

func (u *ProfileUpdate) String() string {
	return fmt.Sprintf("profile %s (%v)", u.ProfileID, u.Op)
}

// ProfileRulesUpdate is a change of the rules document of a profile.
type ProfileRulesUpdate struct {
	Key       string
	ProfileID string
	Op        datasync.Op
	Value     datasync.KeyVal
}

func (u *ProfileRulesUpdate) Keyword() string {
	return model.ProfileRulesKeyword
}

func (u *ProfileRulesUpdate) String() string {
	return fmt.Sprintf("rules of profile %s (%v)", u.ProfileID, u.Op)
}

// ProfileTagsUpdate is a change of the tags document of a profile.
type ProfileTagsUpdate struct {
	Key       string
	ProfileID string
	Op        datasync.Op
	Value     datasync.KeyVal
}

func (u *ProfileTagsUpdate) Keyword() string {
	return model.ProfileTagsKeyword
}

func (u *ProfileTagsUpdate) String() string {
	return fmt.Sprintf("tags of profile %s (%v)", u.ProfileID, u.Op)
}

// PoolUpdate is a change of an IPv4 address pool.
type PoolUpdate struct {
	Key         string
	EncodedCIDR string
	Op          datasync.Op
	Value       datasync.KeyVal
}

func (u *PoolUpdate) Keyword() string {
	return model.PoolKeyword
}

func (u *PoolUpdate) String() string {
	return fmt.Sprintf("IPv4 pool %s (%v)", u.EncodedCIDR, u.Op)
}

// FelixStatusUpdate is a change of a per-host felix status leaf. Last
// distinguishes the last_reported_status leaf from the live status leaf.
type FelixStatusUpdate struct {
	Key      string
	Hostname string
	Last     bool
	Op       datasync.Op
	Value    datasync.KeyVal
}

func (u *FelixStatusUpdate) Keyword() string {
	return model.FelixStatusKeyword
}

func (u *FelixStatusUpdate) String() string {
	if u.Last {
		return fmt.Sprintf("last reported status of host %s (%v)", u.Hostname, u.Op)
	}
	return fmt.Sprintf("status of host %s (%v)", u.Hostname, u.Op)
}
