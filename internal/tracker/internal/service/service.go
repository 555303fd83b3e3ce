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

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ecodeclub/dsatracker/internal/pkg/snowflake"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/event"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrPersistence 状态已经更新但是写入存储失败，内存中的状态不会回滚
	ErrPersistence = errors.New("持久化失败")
	// ErrLedgerUnavailable 账本还没有成功从存储读取，拒绝修改
	ErrLedgerUnavailable = fmt.Errorf("%w: 账本尚未加载", ErrPersistence)
)

const (
	MemberApp    snowflake.App = 0
	ChallengeApp snowflake.App = 1
	// AppCount 需要注册到 snowflake 生成器的业务数量
	AppCount = 2
)

type Service interface {
	// Bootstrap 从存储中加载账本，成员不存在时初始化默认成员
	Bootstrap(ctx context.Context) error

	Snapshot(ctx context.Context) (domain.Ledger, error)
	Ranking(ctx context.Context) ([]domain.Member, error)
	Challenges(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, error)
	Challenge(ctx context.Context, id int64) (domain.Challenge, error)
	Progress(ctx context.Context, id int64) (domain.Progress, error)
	Overdue(ctx context.Context) ([]domain.Challenge, error)

	AddMember(ctx context.Context, name string) (domain.Member, error)
	RenameMember(ctx context.Context, id int64, name string) (domain.Member, error)
	AffectedChallenges(ctx context.Context, memberID int64) (int, error)
	// RemoveMember 返回被级联删除的挑战数量
	RemoveMember(ctx context.Context, id int64, force bool) (int, error)

	SubmitChallenge(ctx context.Context, memberID int64, problems []domain.Problem) (domain.Challenge, error)
	ToggleSolved(ctx context.Context, id int64, index int) (domain.Challenge, error)
	SubmitSolutions(ctx context.Context, id int64) (domain.Challenge, error)
	MarkFailed(ctx context.Context, id int64) (domain.Challenge, error)
}

type service struct {
	mu     sync.Mutex
	loaded bool
	ledger domain.Ledger

	repo     repository.LedgerRepository
	producer event.ChallengeEventProducer
	ids      snowflake.SnowFlake
	clock    Clock
	logger   *elog.Component
}

func NewService(repo repository.LedgerRepository,
	producer event.ChallengeEventProducer,
	ids snowflake.SnowFlake,
	clock Clock) Service {
	return &service{
		repo:     repo,
		producer: producer,
		ids:      ids,
		clock:    clock,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bootstrap(ctx)
}

func (s *service) bootstrap(ctx context.Context) error {
	l, found, err := s.repo.Load(ctx)
	if err != nil {
		defaults, err1 := s.defaultMembers()
		if err1 != nil {
			return err1
		}
		// 读取失败时只在内存里使用默认成员供查询，loaded 保持 false，下次访问会重新读取
		s.ledger = domain.Ledger{Members: defaults}
		persistFailureCounter.Inc()
		s.logger.Error("加载账本失败，使用默认成员", elog.FieldErr(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if found {
		s.ledger = l
		s.loaded = true
		return nil
	}

	defaults, err := s.defaultMembers()
	if err != nil {
		return err
	}
	l.Members = defaults
	s.ledger = l
	s.loaded = true
	return s.persist(ctx, s.ledger)
}

func (s *service) defaultMembers() ([]domain.Member, error) {
	var ids [domain.DefaultMemberCount]int64
	for i := range ids {
		id, err := s.ids.Generate(MemberApp)
		if err != nil {
			return nil, err
		}
		ids[i] = id.Int64()
	}
	return domain.DefaultMembers(ids), nil
}

// ensureLoaded 调用方必须持有锁。查询可以忽略返回的错误，
// 修改必须在账本成功读取之后才能进行，否则会用默认成员覆盖存储中的数据
func (s *service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if err := s.bootstrap(ctx); err != nil {
		s.logger.Warn("初始化账本失败", elog.FieldErr(err))
	}
	if !s.loaded {
		return ErrLedgerUnavailable
	}
	return nil
}

func (s *service) persist(ctx context.Context, l domain.Ledger) error {
	if err := s.repo.Save(ctx, l); err != nil {
		persistFailureCounter.Inc()
		s.logger.Error("保存账本失败", elog.FieldErr(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *service) Snapshot(ctx context.Context) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	return s.ledger.Clone(), nil
}

func (s *service) Ranking(ctx context.Context) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	return s.ledger.Ranking(), nil
}

func (s *service) Challenges(ctx context.Context, filter domain.ChallengeFilter) ([]domain.Challenge, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: 未知的挑战状态 %s", domain.ErrValidation, filter.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	return s.ledger.History(filter), nil
}

func (s *service) Challenge(ctx context.Context, id int64) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	return s.ledger.Challenge(id)
}

func (s *service) Progress(ctx context.Context, id int64) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	c, err := s.ledger.Challenge(id)
	if err != nil {
		return domain.Progress{}, err
	}
	if !c.Pending() {
		return domain.Progress{}, fmt.Errorf("%w: 挑战 %d 已经是 %s", domain.ErrInvalidState, id, c.Status)
	}
	return c.Progress(), nil
}

func (s *service) Overdue(ctx context.Context) ([]domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	return s.ledger.Overdue(s.today()), nil
}

func (s *service) AddMember(ctx context.Context, name string) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Member{}, err
	}
	id, err := s.ids.Generate(MemberApp)
	if err != nil {
		return domain.Member{}, err
	}
	l, m, err := s.ledger.AddMember(id.Int64(), name)
	if err != nil {
		return domain.Member{}, err
	}
	s.ledger = l
	return m, s.persist(ctx, l)
}

func (s *service) RenameMember(ctx context.Context, id int64, name string) (domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Member{}, err
	}
	l, m, err := s.ledger.RenameMember(id, name)
	if err != nil {
		return domain.Member{}, err
	}
	s.ledger = l
	return m, s.persist(ctx, l)
}

func (s *service) AffectedChallenges(ctx context.Context, memberID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.ensureLoaded(ctx)
	if _, err := s.ledger.Member(memberID); err != nil {
		return 0, err
	}
	return s.ledger.AffectedChallenges(memberID), nil
}

func (s *service) RemoveMember(ctx context.Context, id int64, force bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	affected := s.ledger.AffectedChallenges(id)
	l, err := s.ledger.RemoveMember(id, force)
	if err != nil {
		return affected, err
	}
	s.ledger = l
	s.logger.Info("删除成员", elog.Int64("memberId", id), elog.Int("challenges", affected))
	return affected, s.persist(ctx, l)
}

func (s *service) SubmitChallenge(ctx context.Context, memberID int64, problems []domain.Problem) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Challenge{}, err
	}
	id, err := s.ids.Generate(ChallengeApp)
	if err != nil {
		return domain.Challenge{}, err
	}
	l, c, err := s.ledger.SubmitChallenge(id.Int64(), memberID, problems, s.today())
	if err != nil {
		return domain.Challenge{}, err
	}
	s.ledger = l
	submittedCounter.Inc()
	return c, s.persist(ctx, l)
}

func (s *service) ToggleSolved(ctx context.Context, id int64, index int) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Challenge{}, err
	}
	l, c, err := s.ledger.ToggleSolved(id, index)
	if err != nil {
		return domain.Challenge{}, err
	}
	s.ledger = l
	// 只影响挑战集合
	if err = s.repo.SaveChallenges(ctx, l.Challenges); err != nil {
		persistFailureCounter.Inc()
		s.logger.Error("保存挑战失败", elog.Int64("challengeId", id), elog.FieldErr(err))
		return c, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return c, nil
}

func (s *service) SubmitSolutions(ctx context.Context, id int64) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Challenge{}, err
	}
	l, c, err := s.ledger.SubmitSolutions(id, s.today())
	if err != nil {
		return domain.Challenge{}, err
	}
	s.ledger = l
	resolvedCounter.WithLabelValues(string(c.Status)).Inc()
	err = s.persist(ctx, l)
	s.publish(ctx, event.ChallengeResolvedEvent{
		ChallengeID:   c.ID,
		MemberID:      c.MemberID,
		MemberName:    c.MemberName,
		Status:        string(c.Status),
		Date:          c.CompletedDate.String(),
		Beneficiaries: []int64{},
	})
	return c, err
}

func (s *service) MarkFailed(ctx context.Context, id int64) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Challenge{}, err
	}
	l, c, err := s.ledger.MarkFailed(id, s.today())
	if err != nil {
		return domain.Challenge{}, err
	}
	s.ledger = l
	resolvedCounter.WithLabelValues(string(c.Status)).Inc()
	err = s.persist(ctx, l)
	others := slice.FilterMap(l.Members, func(idx int, src domain.Member) (int64, bool) {
		return src.ID, src.ID != c.MemberID
	})
	s.publish(ctx, event.ChallengeResolvedEvent{
		ChallengeID:   c.ID,
		MemberID:      c.MemberID,
		MemberName:    c.MemberName,
		Status:        string(c.Status),
		Date:          c.FailedDate.String(),
		Penalty:       domain.PenaltyUnit,
		Reward:        domain.RewardUnit,
		Beneficiaries: others,
	})
	return c, err
}

func (s *service) publish(ctx context.Context, evt event.ChallengeResolvedEvent) {
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送挑战结束事件失败",
			elog.Int64("challengeId", evt.ChallengeID),
			elog.String("status", evt.Status),
			elog.FieldErr(err))
	}
}

func (s *service) today() domain.Date {
	return domain.DateOf(s.clock.Now())
}
