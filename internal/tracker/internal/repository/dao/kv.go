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

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry key 和 value 都是 MySQL 保留字，所以列名加了前缀
type KVEntry struct {
	Key   string `gorm:"column:kv_key;type:varchar(128);primaryKey"`
	Value string `gorm:"column:kv_value;type:longtext"`
	Ctime int64
	Utime int64
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type GORMKVStore struct {
	db *gorm.DB
}

func NewGORMKVStore(db *gorm.DB) *GORMKVStore {
	return &GORMKVStore{db: db}
}

func (s *GORMKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GORMKVStore) Set(ctx context.Context, key string, value string) error {
	return s.upsert(s.db.WithContext(ctx), key, value)
}

// SetMulti 在同一个事务里写入所有 key
func (s *GORMKVStore) SetMulti(ctx context.Context, entries map[string]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range entries {
			if err := s.upsert(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GORMKVStore) upsert(db *gorm.DB, key, value string) error {
	now := time.Now().UnixMilli()
	entry := KVEntry{
		Key:   key,
		Value: value,
		Ctime: now,
		Utime: now,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "utime"}),
	}).Create(&entry).Error
}
