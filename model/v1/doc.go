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

// Package v1 defines version 1 of the shared Calico data model: the etcd
// key namespace used by all components, the builders that turn structured
// identifiers into canonical keys, and the matchers that recover the
// identifiers from raw keys.
//
// The schema is versioned. Only back-compatible changes may be made to
// this package; incompatible changes belong in a new parallel package with
// a revved version suffix, so that several versions of the data model can
// be served side by side during migrations.
package v1
