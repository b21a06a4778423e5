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

package status

import (
	"time"

	"github.com/ligato/cn-infra/datasync"
	"github.com/ligato/cn-infra/logging"
	"github.com/pkg/errors"

	model "github.com/projectcalico/datamodel/model/v1"
)

// Broker defines the slice of a bytes key-value broker that the reporter
// writes through.  The signatures match the cn-infra bytes broker, so a
// real connection satisfies the interface directly.
type Broker interface {
	// Put writes data under the given key.
	Put(key string, data []byte, opts ...datasync.PutOption) error

	// Delete removes the value under the given key.
	Delete(key string, opts ...datasync.DelOption) (existed bool, err error)
}

// Deps lists the dependencies of the reporter.
type Deps struct {
	Log      logging.Logger
	Broker   Broker
	Hostname string
}

// Reporter writes the status reports of one felix instance.  Callers
// serialize the calls; the reporter keeps no locks.
type Reporter struct {
	Deps

	now       func() time.Time
	startTime time.Time
	reported  bool
}

// NewReporter returns a reporter for the given host with its uptime clock
// started.
func NewReporter(deps Deps) *Reporter {
	return newReporter(deps, time.Now)
}

func newReporter(deps Deps, clock func() time.Time) *Reporter {
	return &Reporter{
		Deps:      deps,
		now:       clock,
		startTime: clock(),
	}
}

// ReportStatus writes the current heartbeat under both the status key and
// the last-reported-status key of the host.  Both keys receive the same
// serialized report.
func (r *Reporter) ReportStatus() error {
	now := r.now()
	report := &Report{
		Time:        now.UTC().Format(time.RFC3339),
		Uptime:      now.Sub(r.startTime).Seconds(),
		FirstUpdate: !r.reported,
	}
	data, err := report.Serialize()
	if err != nil {
		return err
	}

	statusKey := model.KeyForStatus(r.Hostname)
	if err := r.Broker.Put(statusKey, data); err != nil {
		return errors.Errorf("failed to write status of host %s: %v", r.Hostname, err)
	}
	if err := r.Broker.Put(model.KeyForLastStatus(r.Hostname), data); err != nil {
		return errors.Errorf("failed to write last status of host %s: %v", r.Hostname, err)
	}

	r.reported = true
	r.Log.WithField("key", statusKey).Debug("Reported felix status")
	return nil
}

// ClearStatus removes both status keys of the host, e.g. on graceful
// shutdown.  Missing keys are not an error.
func (r *Reporter) ClearStatus() error {
	if _, err := r.Broker.Delete(model.KeyForStatus(r.Hostname)); err != nil {
		return errors.Errorf("failed to clear status of host %s: %v", r.Hostname, err)
	}
	if _, err := r.Broker.Delete(model.KeyForLastStatus(r.Hostname)); err != nil {
		return errors.Errorf("failed to clear last status of host %s: %v", r.Hostname, err)
	}
	return nil
}

// ReportEndpointStatus writes the operational status of an endpoint under
// its status path.  The status must be one of the endpoint status values of
// the data model.
func (r *Reporter) ReportEndpointStatus(id model.EndpointID, endpointStatus string) error {
	switch endpointStatus {
	case model.EndpointStatusUp, model.EndpointStatusDown, model.EndpointStatusError:
	default:
		return errors.Errorf("unknown endpoint status %q", endpointStatus)
	}

	key := id.PathForStatus()
	if err := r.Broker.Put(key, []byte(endpointStatus)); err != nil {
		return errors.Errorf("failed to write status of endpoint %s: %v", id, err)
	}
	r.Log.WithField("key", key).Debug("Reported endpoint status")
	return nil
}

// ClearEndpointStatus removes the status of an endpoint, e.g. when the
// endpoint is decommissioned.  A missing key is not an error.
func (r *Reporter) ClearEndpointStatus(id model.EndpointID) error {
	if _, err := r.Broker.Delete(id.PathForStatus()); err != nil {
		return errors.Errorf("failed to clear status of endpoint %s: %v", id, err)
	}
	return nil
}
