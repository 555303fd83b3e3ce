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

package cache

import (
	"context"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

const namespace = "dsa:"

// ECacheStore 把账本直接存放在缓存里，不设置过期时间
type ECacheStore struct {
	ec ecache.Cache
}

func NewECacheStore(ec ecache.Cache) *ECacheStore {
	return &ECacheStore{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: namespace,
		},
	}
}

func (s *ECacheStore) Get(ctx context.Context, key string) (string, bool, error) {
	val := s.ec.Get(ctx, key)
	if val.KeyNotFound() {
		return "", false, nil
	}
	if val.Err != nil {
		return "", false, errors.Wrap(val.Err, "读取缓存失败")
	}
	str, err := val.String()
	if err != nil {
		return "", false, errors.Wrap(err, "缓存数据类型错误")
	}
	return str, true, nil
}

func (s *ECacheStore) Set(ctx context.Context, key string, value string) error {
	return errors.Wrap(s.ec.Set(ctx, key, value, 0), "写入缓存失败")
}
