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

// Package agentconfig resolves the effective configuration of a host agent
// from the layered sources of the data model: built-in defaults, a local
// seed file, the global config directory and the per-host config directory.
// Resolution is total; parameter names are never validated here.
package agentconfig

import (
	"io/ioutil"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	model "github.com/projectcalico/datamodel/model/v1"
)

// Source identifies the layer an effective value came from.
type Source string

// Configuration layers, weakest first. A later layer overrides the value
// of any earlier one.
const (
	SourceDefault Source = "default"
	SourceFile    Source = "config file"
	SourceGlobal  Source = "datastore (global)"
	SourcePerHost Source = "datastore (per-host)"
)

// Entry is one effective configuration value together with its provenance.
type Entry struct {
	Value  string
	Source Source
}

// Effective is the resolved configuration, keyed by parameter name.
type Effective map[string]Entry

// Resolve merges the configuration layers into the effective configuration.
// A nil layer is treated as empty.
func Resolve(defaults, file, global, perHost map[string]string) Effective {
	eff := Effective{}
	eff.apply(defaults, SourceDefault)
	eff.apply(file, SourceFile)
	eff.apply(global, SourceGlobal)
	eff.apply(perHost, SourcePerHost)
	return eff
}

func (e Effective) apply(values map[string]string, source Source) {
	for name, value := range values {
		e[name] = Entry{Value: value, Source: source}
	}
}

// Value returns the effective value of the named parameter.
func (e Effective) Value(name string) (value string, found bool) {
	entry, found := e[name]
	return entry.Value, found
}

// Names returns the names of all resolved parameters, sorted.
func (e Effective) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a YAML file holding a flat name to value mapping.
func LoadFile(path string) (map[string]string, error) {
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to read config file %s: %v", path, err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(yamlFile, &values); err != nil {
		return nil, errors.Errorf("failed to parse config file %s: %v", path, err)
	}
	return values, nil
}

// FromKeyVals splits raw key/value pairs read from the store into the global
// and the per-host configuration of the given host. Keys of other shapes and
// config directories of other hosts are ignored.
func FromKeyVals(hostname string, keyVals map[string]string) (global, perHost map[string]string) {
	global = map[string]string{}
	perHost = map[string]string{}
	for key, value := range keyVals {
		if name, ok := model.ConfigNameFromKey(key); ok {
			global[name] = value
			continue
		}
		if host, name, ok := model.HostConfigFromKey(key); ok && host == hostname {
			perHost[name] = value
		}
	}
	return global, perHost
}
