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
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/dsatracker/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/kafka"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/gotomicro/ego/core/econf"
)

type mqConfig struct {
	// Type kafka 或者 memory，memory 只适合单机调试
	Type      string   `yaml:"type"`
	Network   string   `yaml:"network"`
	Addresses []string `yaml:"addresses"`
	Topics    []struct {
		Name       string `yaml:"name"`
		Partitions int    `yaml:"partitions"`
	} `yaml:"topics"`
}

func InitMQ() mq.MQ {
	var cfg mqConfig
	if err := econf.UnmarshalKey("mq", &cfg); err != nil {
		panic(err)
	}

	var q mq.MQ
	switch cfg.Type {
	case "memory":
		q = memory.NewMQ()
	case "kafka", "":
		kq, err := kafka.NewMQ(cfg.Network, cfg.Addresses)
		if err != nil {
			panic(err)
		}
		q = kq
	default:
		panic(fmt.Sprintf("未知的 mq 类型 %s", cfg.Type))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, t := range cfg.Topics {
		if err := q.CreateTopic(ctx, t.Name, t.Partitions); err != nil {
			panic(fmt.Sprintf("创建 Topic 失败: %s : Topic = %s, Partitions = %d", err.Error(), t.Name, t.Partitions))
		}
	}
	return mqx.NewTracedMQ(q)
}
