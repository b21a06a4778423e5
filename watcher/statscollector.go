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
	"time"

	"github.com/ligato/cn-infra/logging"
	prometheusplugin "github.com/ligato/cn-infra/rpc/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	model "github.com/projectcalico/datamodel/model/v1"
)

const (
	updateInterval = 10 // Metrics update interval, in seconds

	prometheusStatsPath = "/stats" // path where the gauges are exposed
	nodeLabel           = "node"
	resourceLabel       = "resourceType"

	dispatchedMetric = "dispatchedUpdates"
	errorsMetric     = "processErrors"
	changesMetric    = "changeEvents"
	resyncsMetric    = "resyncEvents"
	ignoredMetric    = "ignoredKeys"
)

// StatsCollector exposes watcher counters as Prometheus gauges.
type StatsCollector struct {
	Log        logging.Logger
	Hostname   string
	Prometheus prometheusplugin.API
	Stats      *Stats

	metrics   map[string]*resourceGauges
	gaugeVecs map[string]*prometheus.GaugeVec
	gauges    map[string]prometheus.Gauge
}

// resourceGauges holds the gauges of one resource kind, one per gauge vector.
type resourceGauges struct {
	gauges map[string]prometheus.Gauge
}

// nameAndHelp defines the type for Prometheus metric metadata
type nameAndHelp struct {
	name string
	help string
}

// Init creates the Prometheus registry and registers the gauges.
func (sc *StatsCollector) Init() error {
	sc.gaugeVecs = make(map[string]*prometheus.GaugeVec)
	sc.metrics = make(map[string]*resourceGauges)
	sc.gauges = make(map[string]prometheus.Gauge)

	err := sc.Prometheus.NewRegistry(prometheusStatsPath,
		promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError, ErrorLog: sc.Log})
	if err != nil {
		sc.Log.Errorf("failed to create Prometheus registry for path '%s', error %s", prometheusStatsPath, err)
		return err
	}

	gaugeVecsMetadata := []nameAndHelp{
		{dispatchedMetric, "Number of classified updates handed to the processor"},
		{errorsMetric, "Number of updates the processor failed to handle"},
	}

	for _, nh := range gaugeVecsMetadata {
		sc.gaugeVecs[nh.name] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        nh.name,
			Help:        nh.help,
			ConstLabels: prometheus.Labels{nodeLabel: sc.Hostname},
		}, []string{resourceLabel})

		err = sc.Prometheus.Register(prometheusStatsPath, sc.gaugeVecs[nh.name])
		if err != nil {
			sc.Log.Errorf("failed to register metric '%s', error %s", nh.name, err)
			return err
		}
	}

	gaugesMetadata := []nameAndHelp{
		{changesMetric, "Number of data change events received from the store"},
		{resyncsMetric, "Number of resync events received from the store"},
		{ignoredMetric, "Number of keys that matched no known shape"},
	}

	for _, nh := range gaugesMetadata {
		sc.gauges[nh.name] = prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        nh.name,
			Help:        nh.help,
			ConstLabels: prometheus.Labels{nodeLabel: sc.Hostname},
		})

		err = sc.Prometheus.Register(prometheusStatsPath, sc.gauges[nh.name])
		if err != nil {
			sc.Log.Errorf("failed to register metric '%s', error %s", nh.name, err)
			return err
		}
	}

	for _, resource := range model.Resources() {
		sc.addResource(resource.Keyword)
	}

	return nil
}

// addResource
func (sc *StatsCollector) addResource(keyword string) {
	entry := &resourceGauges{
		gauges: map[string]prometheus.Gauge{},
	}
	// add gauges with corresponding labels into vectors
	var err error
	for k, vec := range sc.gaugeVecs {
		entry.gauges[k], err = vec.GetMetricWith(prometheus.Labels{resourceLabel: keyword})
		if err != nil {
			sc.Log.Error(err)
		}
	}
	sc.metrics[keyword] = entry
}

// Start launches periodic updates of the gauges, stopped by closing closeCh.
func (sc *StatsCollector) Start(closeCh chan struct{}) {
	go func() {
		for {
			select {
			case <-closeCh:
				sc.Log.Info("Closing")
				return
			case <-time.After(updateInterval * time.Second):
				sc.updatePrometheusStats()
			}
		}
	}()
}

// updatePrometheusStats updates the gauges in Prometheus
func (sc *StatsCollector) updatePrometheusStats() {
	snap := sc.Stats.Snapshot()

	if changes, found := sc.gauges[changesMetric]; found && changes != nil {
		changes.Set(float64(snap.ChangeEvents))
	}
	if resyncs, found := sc.gauges[resyncsMetric]; found && resyncs != nil {
		resyncs.Set(float64(snap.ResyncEvents))
	}
	if ignored, found := sc.gauges[ignoredMetric]; found && ignored != nil {
		ignored.Set(float64(snap.IgnoredKeys))
	}

	for keyword, entry := range sc.metrics {
		if dispatched, found := entry.gauges[dispatchedMetric]; found && dispatched != nil {
			dispatched.Set(float64(snap.Dispatched[keyword]))
		}
		if errs, found := entry.gauges[errorsMetric]; found && errs != nil {
			errs.Set(float64(snap.Errors[keyword]))
		}
	}
}
