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

package mqx

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedMQ 给所有生产者加上 span
type TracedMQ struct {
	mq.MQ
	tracer trace.Tracer
}

func NewTracedMQ(q mq.MQ) *TracedMQ {
	return &TracedMQ{MQ: q, tracer: otel.Tracer("internal/pkg/mqx")}
}

func (t *TracedMQ) Producer(topic string) (mq.Producer, error) {
	p, err := t.MQ.Producer(topic)
	if err != nil {
		return nil, err
	}
	return &tracedProducer{Producer: p, topic: topic, tracer: t.tracer}, nil
}

type tracedProducer struct {
	mq.Producer
	topic  string
	tracer trace.Tracer
}

func (p *tracedProducer) Produce(ctx context.Context, m *mq.Message) (*mq.ProducerResult, error) {
	ctx, span := p.start(ctx, m)
	defer span.End()
	res, err := p.Producer.Produce(ctx, m)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (p *tracedProducer) ProduceWithPartition(ctx context.Context, m *mq.Message, partition int) (*mq.ProducerResult, error) {
	ctx, span := p.start(ctx, m)
	defer span.End()
	span.SetAttributes(attribute.Int("messaging.partition", partition))
	res, err := p.Producer.ProduceWithPartition(ctx, m, partition)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (p *tracedProducer) start(ctx context.Context, m *mq.Message) (context.Context, trace.Span) {
	ctx, span := p.tracer.Start(ctx, p.topic+" publish", trace.WithSpanKind(trace.SpanKindProducer))
	span.SetAttributes(
		attribute.String("messaging.destination", p.topic),
		attribute.Int("messaging.message_length", len(m.Value)),
	)
	return ctx, span
}
