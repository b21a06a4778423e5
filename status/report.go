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

// Package status writes felix status reports into the status subtree of the
// data model: the per-host heartbeat and the per-endpoint operational
// status.  Storage access goes through a narrow injected broker; retries
// and connection management belong to the caller.
package status

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Report is the heartbeat value a felix instance writes about itself.
type Report struct {
	// Time is the wall-clock time of the report, RFC 3339, UTC.
	Time string `json:"time"`
	// Uptime is the process uptime in seconds at the time of the report.
	Uptime float64 `json:"uptime"`
	// FirstUpdate is true on the first report of the current process.
	FirstUpdate bool `json:"first_update"`
}

// Serialize encodes the report into its stored JSON form.
func (r *Report) Serialize() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Errorf("failed to serialize status report: %v", err)
	}
	return data, nil
}

// ParseReport decodes a stored status report value.
func ParseReport(data []byte) (*Report, error) {
	report := &Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, errors.Errorf("malformed status report %q: %v", data, err)
	}
	return report, nil
}
