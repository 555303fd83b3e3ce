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

package startup

import (
	"github.com/ecodeclub/dsatracker/internal/pkg/snowflake"
	"github.com/ecodeclub/dsatracker/internal/tracker"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/event"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/job"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/service"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

// InitModule 时钟由测试控制，不在这里加载账本
func InitModule(store repository.Store, q mq.MQ, clock service.Clock) (*tracker.Module, error) {
	wire.Build(
		repository.NewLedgerRepository,
		event.NewChallengeEventProducer,
		InitIDGenerator,
		service.NewService,
		web.NewHandler,
		job.NewOverdueChallengesJob,
		wire.Struct(new(tracker.Module), "*"),
	)
	return new(tracker.Module), nil
}

func InitIDGenerator() (snowflake.SnowFlake, error) {
	return snowflake.NewGenerator(0, service.AppCount)
}
