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
	"fmt"
	"testing"
	"time"

	"github.com/ligato/cn-infra/logging/logrus"
	"github.com/onsi/gomega"

	mockbroker "github.com/projectcalico/datamodel/mock/broker"
	model "github.com/projectcalico/datamodel/model/v1"
)

const testHostname = "host-1"

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func testReporter() (*Reporter, *mockbroker.Mock, *testClock) {
	broker := &mockbroker.Mock{}
	clock := &testClock{t: time.Date(2019, 7, 10, 12, 0, 0, 0, time.UTC)}
	reporter := newReporter(Deps{
		Log:      logrus.DefaultLogger(),
		Broker:   broker,
		Hostname: testHostname,
	}, clock.now)
	return reporter, broker, clock
}

func TestReportStatus(t *testing.T) {
	gomega.RegisterTestingT(t)

	reporter, broker, clock := testReporter()

	err := reporter.ReportStatus()
	gomega.Expect(err).To(gomega.BeNil())

	statusData, found := broker.GetValue(model.KeyForStatus(testHostname))
	gomega.Expect(found).To(gomega.BeTrue())
	lastData, found := broker.GetValue(model.KeyForLastStatus(testHostname))
	gomega.Expect(found).To(gomega.BeTrue())
	gomega.Expect(statusData).To(gomega.Equal(lastData))

	report, err := ParseReport(statusData)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(report.Time).To(gomega.Equal("2019-07-10T12:00:00Z"))
	gomega.Expect(report.Uptime).To(gomega.Equal(float64(0)))
	gomega.Expect(report.FirstUpdate).To(gomega.BeTrue())

	// Later reports carry the uptime and drop the first-update marker.
	clock.t = clock.t.Add(90 * time.Second)
	err = reporter.ReportStatus()
	gomega.Expect(err).To(gomega.BeNil())

	statusData, _ = broker.GetValue(model.KeyForStatus(testHostname))
	report, err = ParseReport(statusData)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(report.Time).To(gomega.Equal("2019-07-10T12:01:30Z"))
	gomega.Expect(report.Uptime).To(gomega.Equal(float64(90)))
	gomega.Expect(report.FirstUpdate).To(gomega.BeFalse())
}

func TestReportStatusBrokerError(t *testing.T) {
	gomega.RegisterTestingT(t)

	reporter, broker, _ := testReporter()

	broker.InjectPutError(fmt.Errorf("store is down"))
	err := reporter.ReportStatus()
	gomega.Expect(err).NotTo(gomega.BeNil())

	// A failed first report keeps the first-update marker for the retry.
	broker.InjectPutError(nil)
	err = reporter.ReportStatus()
	gomega.Expect(err).To(gomega.BeNil())

	statusData, _ := broker.GetValue(model.KeyForStatus(testHostname))
	report, err := ParseReport(statusData)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(report.FirstUpdate).To(gomega.BeTrue())
}

func TestClearStatus(t *testing.T) {
	gomega.RegisterTestingT(t)

	reporter, broker, _ := testReporter()

	err := reporter.ReportStatus()
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(broker.Keys()).To(gomega.HaveLen(2))

	err = reporter.ClearStatus()
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(broker.Keys()).To(gomega.BeEmpty())

	// Clearing an already clean host is not an error.
	err = reporter.ClearStatus()
	gomega.Expect(err).To(gomega.BeNil())
}

func TestReportEndpointStatus(t *testing.T) {
	gomega.RegisterTestingT(t)

	reporter, broker, _ := testReporter()

	id := model.EndpointID{
		Host:         testHostname,
		Orchestrator: "openstack",
		Workload:     "wl-0090",
		Endpoint:     "ep-49aa",
	}

	err := reporter.ReportEndpointStatus(id, model.EndpointStatusUp)
	gomega.Expect(err).To(gomega.BeNil())

	data, found := broker.GetValue(id.PathForStatus())
	gomega.Expect(found).To(gomega.BeTrue())
	gomega.Expect(string(data)).To(gomega.Equal("up"))

	err = reporter.ReportEndpointStatus(id, "degraded")
	gomega.Expect(err).NotTo(gomega.BeNil())

	err = reporter.ClearEndpointStatus(id)
	gomega.Expect(err).To(gomega.BeNil())
	_, found = broker.GetValue(id.PathForStatus())
	gomega.Expect(found).To(gomega.BeFalse())

	err = reporter.ClearEndpointStatus(id)
	gomega.Expect(err).To(gomega.BeNil())
}

func TestParseReport(t *testing.T) {
	gomega.RegisterTestingT(t)

	report := &Report{Time: "2019-07-10T12:00:00Z", Uptime: 3.5, FirstUpdate: false}
	data, err := report.Serialize()
	gomega.Expect(err).To(gomega.BeNil())

	parsed, err := ParseReport(data)
	gomega.Expect(err).To(gomega.BeNil())
	gomega.Expect(parsed).To(gomega.Equal(report))

	_, err = ParseReport([]byte("not json"))
	gomega.Expect(err).NotTo(gomega.BeNil())
}
