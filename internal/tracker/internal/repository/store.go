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

import "context"

// Store 键值存储，只要求最基本的读写语义，两个 key 之间不保证事务
//
//go:generate mockgen -source=./store.go -destination=./mocks/store.mock.go -package=repomocks Store,BatchStore
type Store interface {
	// Get key 不存在时返回 found = false，不返回错误
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set 覆盖写
	Set(ctx context.Context, key string, value string) error
}

// BatchStore 能够在一次调用中原子地写入多个 key
type BatchStore interface {
	Store
	SetMulti(ctx context.Context, entries map[string]string) error
}
