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

package tracker

import (
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/event"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/job"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository/cache"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository/dao"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/service"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/web"
	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
)

type Module struct {
	Svc        Service
	Hdl        *Handler
	OverdueJob *OverdueChallengesJob
}

type Service = service.Service
type Handler = web.Handler
type OverdueChallengesJob = job.OverdueChallengesJob
type Store = repository.Store
type Member = domain.Member
type Challenge = domain.Challenge
type ChallengeResolvedEvent = event.ChallengeResolvedEvent

const ChallengeResolvedTopic = event.ChallengeResolvedTopic

func NewECacheStore(ec ecache.Cache) Store {
	return cache.NewECacheStore(ec)
}

// NewGORMStore 会自动建表
func NewGORMStore(db *egorm.Component) (Store, error) {
	if err := dao.InitTables(db); err != nil {
		return nil, err
	}
	return dao.NewGORMKVStore(db), nil
}

func NewMemoryStore() Store {
	return repository.NewMemoryStore()
}
