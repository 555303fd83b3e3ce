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
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const spanKey = "tracing:span"

type GormTracingPlugin struct {
	tracer trace.Tracer
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: otel.Tracer("gorm"),
	}
}

func (p *GormTracingPlugin) Name() string {
	return "tracing"
}

type registerFunc func(name string, fn func(*gorm.DB)) error

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before registerFunc
		after  registerFunc
	}{
		{
			op:     "SELECT",
			before: func(n string, fn func(*gorm.DB)) error { return cb.Query().Before("gorm:query").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Query().After("gorm:query").Register(n, fn) },
		},
		{
			op:     "INSERT",
			before: func(n string, fn func(*gorm.DB)) error { return cb.Create().Before("gorm:create").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Create().After("gorm:create").Register(n, fn) },
		},
		{
			op:     "UPDATE",
			before: func(n string, fn func(*gorm.DB)) error { return cb.Update().Before("gorm:update").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Update().After("gorm:update").Register(n, fn) },
		},
		{
			op:     "DELETE",
			before: func(n string, fn func(*gorm.DB)) error { return cb.Delete().Before("gorm:delete").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Register(n, fn) },
		},
		{
			op:     "RAW",
			before: func(n string, fn func(*gorm.DB)) error { return cb.Raw().Before("gorm:raw").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Raw().After("gorm:raw").Register(n, fn) },
		},
	}
	for _, h := range hooks {
		if err := h.before("tracing:before_"+h.op, p.before(h.op)); err != nil {
			return err
		}
		if err := h.after("tracing:after_"+h.op, p.after); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormTracingPlugin) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		_, span := p.tracer.Start(ctx, db.Statement.Table+" "+op,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", "mysql"),
				attribute.String("db.operation", op),
				attribute.String("db.table", db.Statement.Table),
			))
		db.InstanceSet(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	val, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := val.(trace.Span)
	if !ok {
		return
	}
	defer span.End()
	span.SetAttributes(
		attribute.String("db.statement", db.Statement.SQL.String()),
		attribute.Int64("db.rows_affected", db.RowsAffected),
	)
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}
}
