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

package testioc

import (
	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

var cache ecache.Cache

// InitCache 测试数据放在单独的 namespace 下，避免和本地数据混在一起
func InitCache() ecache.Cache {
	if cache != nil {
		return cache
	}
	loadConfig()
	cmd := redis.NewClient(&redis.Options{
		Addr: econf.GetString("redis.addr"),
	})
	cache = &ecache.NamespaceCache{
		C:         eredis.NewCache(cmd),
		Namespace: "dsatest:",
	}
	return cache
}
