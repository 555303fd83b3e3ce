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

//go:build wireinject

package tracker

import (
	"context"

	"github.com/ecodeclub/dsatracker/internal/pkg/snowflake"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/event"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/job"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/service"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

func InitModule(store Store, q mq.MQ) (*Module, error) {
	wire.Build(
		repository.NewLedgerRepository,
		event.NewChallengeEventProducer,
		initIDGenerator,
		service.NewSystemClock,
		initService,
		web.NewHandler,
		job.NewOverdueChallengesJob,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func initIDGenerator() (snowflake.SnowFlake, error) {
	return snowflake.NewGenerator(uint(econf.GetInt("tracker.nodeId")), service.AppCount)
}

// initService 加载失败不影响启动，此时使用内存中的默认成员
func initService(repo repository.LedgerRepository,
	producer event.ChallengeEventProducer,
	ids snowflake.SnowFlake,
	clock service.Clock) service.Service {
	svc := service.NewService(repo, producer, ids, clock)
	if err := svc.Bootstrap(context.Background()); err != nil {
		elog.DefaultLogger.Error("加载账本失败", elog.FieldErr(err))
	}
	return svc
}
