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
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	MembersKey    = "dsa-members"
	ChallengesKey = "dsa-challenges"
)

//go:generate mockgen -source=./ledger.go -destination=./mocks/ledger.mock.go -package=repomocks LedgerRepository
type LedgerRepository interface {
	// Load membersFound 为 false 表示成员集合不存在或者无法解析，需要初始化默认成员。
	// 挑战集合不存在或者无法解析时按空集合处理。
	Load(ctx context.Context) (ledger domain.Ledger, membersFound bool, err error)
	// Save 一次写入两个集合
	Save(ctx context.Context, ledger domain.Ledger) error
	// SaveChallenges 只写入挑战集合
	SaveChallenges(ctx context.Context, challenges []domain.Challenge) error
}

type ledgerRepository struct {
	store  Store
	tracer trace.Tracer
	logger *elog.Component
}

func NewLedgerRepository(store Store) LedgerRepository {
	return &ledgerRepository{
		store:  store,
		tracer: otel.Tracer("tracker/repository"),
		logger: elog.DefaultLogger,
	}
}

func (r *ledgerRepository) Load(ctx context.Context) (domain.Ledger, bool, error) {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Load")
	defer span.End()

	var (
		membersVal, challengesVal     string
		membersFound, challengesFound bool
	)
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		membersVal, membersFound, err = r.store.Get(ctx, MembersKey)
		return err
	})
	eg.Go(func() error {
		var err error
		challengesVal, challengesFound, err = r.store.Get(ctx, ChallengesKey)
		return err
	})
	if err := eg.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Ledger{}, false, fmt.Errorf("读取账本失败: %w", err)
	}

	var res domain.Ledger
	if membersFound {
		var ms []Member
		err := json.Unmarshal([]byte(membersVal), &ms)
		switch {
		case err != nil:
			r.logger.Warn("成员数据无法解析，按不存在处理", elog.FieldErr(err))
			membersFound = false
		case ms == nil:
			// 存储的值是 null
			r.logger.Warn("成员数据为空值，按不存在处理")
			membersFound = false
		default:
			res.Members = toDomainMembers(ms)
		}
	}
	if challengesFound {
		var cs []Challenge
		if err := json.Unmarshal([]byte(challengesVal), &cs); err != nil {
			r.logger.Warn("挑战数据无法解析，按不存在处理", elog.FieldErr(err))
		} else {
			res.Challenges = toDomainChallenges(cs)
		}
	}
	return res, membersFound, nil
}

func (r *ledgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Save")
	defer span.End()

	// 先完成两次序列化，避免只写入其中一个 key
	members, err := json.Marshal(toMemberEntities(ledger.Members))
	if err != nil {
		return fmt.Errorf("序列化成员失败: %w", err)
	}
	challenges, err := json.Marshal(toChallengeEntities(ledger.Challenges))
	if err != nil {
		return fmt.Errorf("序列化挑战失败: %w", err)
	}

	if bs, ok := r.store.(BatchStore); ok {
		err = bs.SetMulti(ctx, map[string]string{
			MembersKey:    string(members),
			ChallengesKey: string(challenges),
		})
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("写入账本失败: %w", err)
		}
		return nil
	}

	if err = r.store.Set(ctx, MembersKey, string(members)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("写入成员失败: %w", err)
	}
	if err = r.store.Set(ctx, ChallengesKey, string(challenges)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("写入挑战失败: %w", err)
	}
	return nil
}

func (r *ledgerRepository) SaveChallenges(ctx context.Context, challenges []domain.Challenge) error {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.SaveChallenges")
	defer span.End()

	val, err := json.Marshal(toChallengeEntities(challenges))
	if err != nil {
		return fmt.Errorf("序列化挑战失败: %w", err)
	}
	if err = r.store.Set(ctx, ChallengesKey, string(val)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("写入挑战失败: %w", err)
	}
	return nil
}
