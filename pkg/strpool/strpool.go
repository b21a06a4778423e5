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

// Package strpool provides a concurrency-safe string intern pool.  Interning
// equal strings through one pool yields a single shared backing instance,
// which keeps long-lived collections of repetitive identifiers (hostnames,
// orchestrator names, workload IDs) from holding one copy per occurrence.
package strpool

import (
	"sync"
)

// Pool is a canonical string store.  The zero value is ready to use.  All
// methods are safe for concurrent callers.
type Pool struct {
	// mu guards the write side and the counter.
	mu sync.Mutex
	// m maps each interned string to its canonical instance.
	m sync.Map // map[string]string
	// count tracks the number of interned strings.
	count int
}

// Default is a process-wide pool for callers that do not manage their own.
var Default = New()

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Intern returns the canonical instance of s, storing s as the canonical
// instance if the pool has not seen an equal string yet.  The empty string
// is returned as-is and never stored.
func (p *Pool) Intern(s string) string {
	if s == "" {
		return ""
	}

	// Fast read path, no locking.
	if v, ok := p.m.Load(s); ok {
		return v.(string)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if v, ok := p.m.Load(s); ok {
		return v.(string)
	}

	p.m.Store(s, s)
	p.count++
	return s
}

// Len returns the number of interned strings.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Reset drops all interned strings.  Strings returned by earlier Intern
// calls remain valid; later calls re-intern from scratch.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m = sync.Map{}
	p.count = 0
}
