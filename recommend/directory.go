// Copyright 2025 CineMatch Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommend

import "maps"

// UserDirectory resolves display names to user ids. The mapping source is
// injected so it can be swapped without touching the core.
type UserDirectory interface {
	// Resolve returns the user id for a display name.
	Resolve(name string) (int32, bool)
	// List returns the full display name to user id mapping.
	List() map[string]int32
}

// StaticDirectory is a fixed in-memory name to user id table, typically
// read from configuration.
type StaticDirectory map[string]int32

func (d StaticDirectory) Resolve(name string) (int32, bool) {
	userId, ok := d[name]
	return userId, ok
}

func (d StaticDirectory) List() map[string]int32 {
	return maps.Clone(map[string]int32(d))
}
