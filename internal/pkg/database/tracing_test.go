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

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type kvRow struct {
	Key   string `gorm:"column:kv_key;primaryKey"`
	Value string `gorm:"column:kv_value"`
}

func (kvRow) TableName() string {
	return "kv_entries"
}

func TestGormTracingPlugin(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))

	// DryRun 只生成 SQL，不需要真正连上 MySQL
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:root@tcp(localhost:3306)/dsatracker",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Use(NewGormTracingPlugin()))

	var rows []kvRow
	db.WithContext(context.Background()).Where("kv_key = ?", "dsa-members").Find(&rows)
	db.WithContext(context.Background()).Create(&kvRow{Key: "dsa-members", Value: "[]"})

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "kv_entries SELECT", spans[0].Name())
	assert.Equal(t, "kv_entries INSERT", spans[1].Name())
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "mysql", attrs["db.system"])
	assert.Contains(t, attrs["db.statement"], "kv_key")
}
