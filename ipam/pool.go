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

// Package ipam handles the data-store representation of IPAM pools: the
// encoding that fits a CIDR into a single key segment, the pool keys built
// from it, and a little pool arithmetic for tooling.
package ipam

import (
	"net"
	"strings"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/pkg/errors"

	model "github.com/projectcalico/datamodel/model/v1"
)

// EncodeCIDR returns the single-segment encoding of the given network, with
// the slash of the CIDR notation replaced by a dash ("10.1.0.0/16" becomes
// "10.1.0.0-16").
func EncodeCIDR(network *net.IPNet) string {
	return strings.Replace(network.String(), "/", "-", 1)
}

// DecodeCIDR reverses EncodeCIDR.  The result is normalized to the masked
// network address, so decoding accepts segments built from a host address
// within the network.
func DecodeCIDR(encoded string) (*net.IPNet, error) {
	_, network, err := net.ParseCIDR(strings.Replace(encoded, "-", "/", -1))
	if err != nil {
		return nil, errors.Errorf("invalid encoded CIDR %s", encoded)
	}
	return network, nil
}

// PoolKey returns the key under which the given IPv4 pool is stored.
func PoolKey(network *net.IPNet) string {
	return model.PoolV4Dir + "/" + EncodeCIDR(network)
}

// ParsePoolKey returns the pool network if the given key names an IPv4 IPAM
// pool with a well-formed encoded CIDR.
func ParsePoolKey(key string) (*net.IPNet, bool) {
	encoded, ok := model.EncodedCIDRFromPoolKey(key)
	if !ok {
		return nil, false
	}
	network, err := DecodeCIDR(encoded)
	if err != nil {
		return nil, false
	}
	return network, true
}

// PoolRange returns the first and the last assignable address of the pool.
// The network and broadcast addresses are excluded whenever the pool has
// more than two addresses.
func PoolRange(network *net.IPNet) (first net.IP, last net.IP) {
	first, last = cidr.AddressRange(network)
	if cidr.AddressCount(network) > 2 {
		first = cidr.Inc(first)
		last = cidr.Dec(last)
	}
	return first, last
}

// PoolSize returns the total number of addresses in the pool, including the
// network and broadcast addresses.
func PoolSize(network *net.IPNet) uint64 {
	return cidr.AddressCount(network)
}
