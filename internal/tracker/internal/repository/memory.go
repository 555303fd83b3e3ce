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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/syncx"
)

// MemoryStore 进程内存储，重启后数据丢失，用于本地调试和测试
type MemoryStore struct {
	data syncx.Map[string, string]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := s.data.Load(key)
	return val, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.data.Store(key, value)
	return nil
}
