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
	"testing"
	"time"

	"github.com/ecodeclub/dsatracker/internal/pkg/snowflake"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/event"
	evtmocks "github.com/ecodeclub/dsatracker/internal/tracker/internal/event/mocks"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/repository"
	repomocks "github.com/ecodeclub/dsatracker/internal/tracker/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// flakyStore 可以按需让读写失败
type flakyStore struct {
	*repository.MemoryStore
	getErr error
	setErr error
	sets   []string
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: repository.NewMemoryStore()}
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets = append(s.sets, key)
	return s.MemoryStore.Set(ctx, key, value)
}

func sixProblems() []domain.Problem {
	res := make([]domain.Problem, 0, domain.ProblemsPerChallenge)
	for _, title := range []string{"Two Sum", "LRU Cache", "Word Ladder", "Climbing Stairs", "Coin Change", "Trie"} {
		res = append(res, domain.Problem{Title: title, Difficulty: domain.DifficultyMedium})
	}
	return res
}

type testEnv struct {
	svc      Service
	store    *flakyStore
	clock    *fakeClock
	producer *evtmocks.MockChallengeEventProducer
}

func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	ids, err := snowflake.NewGenerator(0, AppCount)
	require.NoError(t, err)
	env := &testEnv{
		store:    newFlakyStore(),
		clock:    &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		producer: evtmocks.NewMockChallengeEventProducer(ctrl),
	}
	env.svc = NewService(repository.NewLedgerRepository(env.store), env.producer, ids, env.clock)
	return env
}

func (e *testEnv) reload(t *testing.T) domain.Ledger {
	l, ok, err := repository.NewLedgerRepository(e.store.MemoryStore).Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	return l
}

func TestService_Bootstrap(t *testing.T) {
	t.Run("首次启动写入默认成员", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.svc.Bootstrap(context.Background()))
		snapshot, err := env.svc.Snapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Members, domain.DefaultMemberCount)
		for i, m := range snapshot.Members {
			assert.Equal(t, []string{"Member 1", "Member 2", "Member 3"}[i], m.Name)
			assert.NotZero(t, m.ID)
			assert.Zero(t, m.TotalSubmissions)
		}
		assert.Empty(t, snapshot.Challenges)
		assert.Equal(t, snapshot.Members, env.reload(t).Members)
	})

	t.Run("已有数据直接加载", func(t *testing.T) {
		env := newTestEnv(t)
		repo := repository.NewLedgerRepository(env.store)
		require.NoError(t, repo.Save(context.Background(), domain.Ledger{
			Members: []domain.Member{{ID: 11, Name: "Alice", Streak: 2, MaxStreak: 5}},
		}))
		env.store.sets = nil
		require.NoError(t, env.svc.Bootstrap(context.Background()))
		snapshot, err := env.svc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.Member{{ID: 11, Name: "Alice", Streak: 2, MaxStreak: 5}}, snapshot.Members)
		assert.Empty(t, env.store.sets)
	})

	t.Run("读取失败只在内存中使用默认成员", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.getErr = errors.New("mock db error")
		err := env.svc.Bootstrap(context.Background())
		assert.ErrorIs(t, err, ErrPersistence)
		snapshot, err := env.svc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, snapshot.Members, domain.DefaultMemberCount)
		assert.Empty(t, env.store.sets)
	})

	t.Run("成员数据为 null 时写入默认成员", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		require.NoError(t, env.store.MemoryStore.Set(ctx, repository.MembersKey, "null"))
		require.NoError(t, env.svc.Bootstrap(ctx))
		l := env.reload(t)
		assert.Len(t, l.Members, domain.DefaultMemberCount)
		assert.Equal(t, "Member 1", l.Members[0].Name)
	})

	t.Run("读取失败后修改不会覆盖已有数据", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		stored := domain.Ledger{
			Members: []domain.Member{{ID: 11, Name: "Alice", TotalSubmissions: 1}},
			Challenges: []domain.Challenge{{
				ID:            99,
				MemberID:      11,
				MemberName:    "Alice",
				Problems:      sixProblems(),
				SubmittedDate: "2024-03-01",
				DueDate:       "2024-03-02",
				Status:        domain.ChallengeStatusPending,
			}},
		}
		require.NoError(t, repository.NewLedgerRepository(env.store).Save(ctx, stored))
		env.store.sets = nil

		env.store.getErr = errors.New("mock db error")
		assert.ErrorIs(t, env.svc.Bootstrap(ctx), ErrPersistence)
		// 存储仍然不可读时拒绝修改
		_, err := env.svc.AddMember(ctx, "Dana")
		assert.ErrorIs(t, err, ErrLedgerUnavailable)
		assert.Empty(t, env.store.sets)

		// 存储恢复后重新读取，再执行修改
		env.store.getErr = nil
		m, err := env.svc.AddMember(ctx, "Dana")
		require.NoError(t, err)
		assert.Equal(t, "Dana", m.Name)

		l := env.reload(t)
		require.Len(t, l.Members, 2)
		assert.Equal(t, "Alice", l.Members[0].Name)
		assert.Equal(t, "Dana", l.Members[1].Name)
		assert.Equal(t, stored.Challenges, l.Challenges)
	})

	t.Run("未显式初始化时首次访问自动加载", func(t *testing.T) {
		env := newTestEnv(t)
		ranking, err := env.svc.Ranking(context.Background())
		require.NoError(t, err)
		assert.Len(t, ranking, domain.DefaultMemberCount)
	})
}

func TestService_ChallengeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.Bootstrap(ctx))
	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	owner := snapshot.Members[0]

	c, err := env.svc.SubmitChallenge(ctx, owner.ID, sixProblems())
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2024-03-01"), c.SubmittedDate)
	assert.Equal(t, domain.Date("2024-03-02"), c.DueDate)
	assert.Equal(t, ChallengeApp, snowflake.ID(c.ID).App())

	progress, err := env.svc.Progress(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Solved)

	_, err = env.svc.SubmitSolutions(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	for i := 0; i < domain.ProblemsPerChallenge; i++ {
		env.store.sets = nil
		_, err = env.svc.ToggleSolved(ctx, c.ID, i)
		require.NoError(t, err)
		assert.Equal(t, []string{repository.ChallengesKey}, env.store.sets)
	}

	env.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, evt event.ChallengeResolvedEvent) error {
			assert.Equal(t, c.ID, evt.ChallengeID)
			assert.Equal(t, owner.ID, evt.MemberID)
			assert.Equal(t, string(domain.ChallengeStatusCompleted), evt.Status)
			assert.Equal(t, "2024-03-01", evt.Date)
			assert.Zero(t, evt.Penalty)
			assert.Empty(t, evt.Beneficiaries)
			return nil
		})
	done, err := env.svc.SubmitSolutions(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChallengeStatusCompleted, done.Status)
	assert.True(t, done.SolutionsSubmitted)

	_, err = env.svc.Progress(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = env.svc.MarkFailed(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored := env.reload(t)
	assert.Equal(t, int64(1), stored.Members[0].Streak)
	assert.Equal(t, int64(1), stored.Members[0].TotalSubmissions)
	require.Len(t, stored.Challenges, 1)
	assert.Equal(t, domain.ChallengeStatusCompleted, stored.Challenges[0].Status)
}

func TestService_MarkFailed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	owner := snapshot.Members[1]

	c, err := env.svc.SubmitChallenge(ctx, owner.ID, sixProblems())
	require.NoError(t, err)

	env.clock.now = env.clock.now.Add(48 * time.Hour)
	overdue, err := env.svc.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, c.ID, overdue[0].ID)

	env.producer.EXPECT().Produce(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, evt event.ChallengeResolvedEvent) error {
			assert.Equal(t, string(domain.ChallengeStatusFailed), evt.Status)
			assert.Equal(t, "2024-03-03", evt.Date)
			assert.Equal(t, domain.PenaltyUnit, evt.Penalty)
			assert.Equal(t, domain.RewardUnit, evt.Reward)
			assert.ElementsMatch(t, []int64{snapshot.Members[0].ID, snapshot.Members[2].ID}, evt.Beneficiaries)
			return errors.New("mock mq error")
		})
	failed, err := env.svc.MarkFailed(ctx, c.ID)
	// 事件发送失败不影响结果
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2024-03-03"), failed.FailedDate)

	overdue, err = env.svc.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	stored := env.reload(t)
	for _, m := range stored.Members {
		if m.ID == owner.ID {
			assert.Equal(t, int64(100), m.TotalPaid)
			assert.Equal(t, int64(0), m.TotalEarned)
			continue
		}
		assert.Equal(t, int64(50), m.TotalEarned)
		assert.Equal(t, int64(0), m.TotalPaid)
	}
}

func TestService_PersistenceFailureKeepsMemory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.Bootstrap(ctx))
	env.store.setErr = errors.New("mock db error")

	m, err := env.svc.AddMember(ctx, "  Alice  ")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "Alice", m.Name)

	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Members, 4)
	assert.Equal(t, m, snapshot.Members[3])

	c, err := env.svc.SubmitChallenge(ctx, m.ID, sixProblems())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "Alice", c.MemberName)

	toggled, err := env.svc.ToggleSolved(ctx, c.ID, 0)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.True(t, toggled.Problems[0].Solved)

	env.store.setErr = nil
	_, err = env.svc.RenameMember(ctx, m.ID, "Bob")
	require.NoError(t, err)
	stored := env.reload(t)
	assert.Len(t, stored.Members, 4)
	require.Len(t, stored.Challenges, 1)
	assert.True(t, stored.Challenges[0].Problems[0].Solved)
	// 改名不影响挑战里的成员名称
	assert.Equal(t, "Alice", stored.Challenges[0].MemberName)
}

func TestService_RemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	target := snapshot.Members[0]
	for i := 0; i < 2; i++ {
		_, err = env.svc.SubmitChallenge(ctx, target.ID, sixProblems())
		require.NoError(t, err)
	}
	_, err = env.svc.SubmitChallenge(ctx, snapshot.Members[1].ID, sixProblems())
	require.NoError(t, err)

	cnt, err := env.svc.AffectedChallenges(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)
	_, err = env.svc.AffectedChallenges(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cnt, err = env.svc.RemoveMember(ctx, target.ID, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	var ce *domain.ConfirmationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Affected)
	assert.Equal(t, 2, cnt)

	cnt, err = env.svc.RemoveMember(ctx, target.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)

	stored := env.reload(t)
	assert.Len(t, stored.Members, 2)
	require.Len(t, stored.Challenges, 1)
	assert.Equal(t, snapshot.Members[1].ID, stored.Challenges[0].MemberID)

	_, err = env.svc.RemoveMember(ctx, target.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Challenges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	snapshot, err := env.svc.Snapshot(ctx)
	require.NoError(t, err)
	first, err := env.svc.SubmitChallenge(ctx, snapshot.Members[0].ID, sixProblems())
	require.NoError(t, err)
	env.clock.now = env.clock.now.Add(24 * time.Hour)
	second, err := env.svc.SubmitChallenge(ctx, snapshot.Members[1].ID, sixProblems())
	require.NoError(t, err)

	all, err := env.svc.Challenges(ctx, domain.ChallengeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	mine, err := env.svc.Challenges(ctx, domain.ChallengeFilter{MemberID: snapshot.Members[0].ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = env.svc.Challenges(ctx, domain.ChallengeFilter{Status: "unknown"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Challenge(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ToggleSolvedOnlySavesChallenges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := repomocks.NewMockLedgerRepository(ctrl)
	ledger := domain.Ledger{
		Members: []domain.Member{{ID: 1, Name: "Alice"}},
		Challenges: []domain.Challenge{{
			ID: 2, MemberID: 1, MemberName: "Alice",
			Problems: sixProblems(), Status: domain.ChallengeStatusPending,
			SubmittedDate: "2024-03-01", DueDate: "2024-03-02",
		}},
	}
	repo.EXPECT().Load(gomock.Any()).Return(ledger, true, nil)
	repo.EXPECT().SaveChallenges(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, cs []domain.Challenge) error {
			require.Len(t, cs, 1)
			assert.True(t, cs[0].Problems[3].Solved)
			return nil
		})
	ids, err := snowflake.NewGenerator(0, AppCount)
	require.NoError(t, err)
	svc := NewService(repo, evtmocks.NewMockChallengeEventProducer(ctrl), ids, NewSystemClock())

	c, err := svc.ToggleSolved(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.SolvedCount())

	_, err = svc.ToggleSolved(context.Background(), 2, domain.ProblemsPerChallenge)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
