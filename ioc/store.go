// Copyright 2023 ecodeclub
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

package ioc

import (
	"fmt"

	"github.com/ecodeclub/dsatracker/config"
	"github.com/ecodeclub/dsatracker/internal/tracker"
	"github.com/gotomicro/ego/core/econf"
)

// InitStore 按照 tracker.storage 选择存储，只初始化用到的那一个
func InitStore() tracker.Store {
	var cfg config.TrackerConfig
	if err := econf.UnmarshalKey("tracker", &cfg); err != nil {
		panic(err)
	}
	switch cfg.Storage {
	case "redis":
		return tracker.NewECacheStore(InitCache(InitRedis()))
	case "mysql":
		s, err := tracker.NewGORMStore(InitDB())
		if err != nil {
			panic(err)
		}
		return s
	case "memory":
		return tracker.NewMemoryStore()
	default:
		panic(fmt.Sprintf("未知的存储类型 %q", cfg.Storage))
	}
}
