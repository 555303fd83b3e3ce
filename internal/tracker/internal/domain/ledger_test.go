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

package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = Date("2024-03-01")

func sixProblems() []Problem {
	res := make([]Problem, 0, ProblemsPerChallenge)
	for i := 0; i < ProblemsPerChallenge; i++ {
		res = append(res, Problem{
			Title:      fmt.Sprintf("problem-%d", i),
			Link:       "https://leetcode.com/problems/two-sum",
			Difficulty: DifficultyMedium,
		})
	}
	return res
}

func threeMembers() Ledger {
	return Ledger{Members: DefaultMembers([3]int64{1, 2, 3})}
}

func TestLedger_AddMember(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
		want    Member
	}{
		{
			name:    "空名称",
			input:   "",
			wantErr: ErrValidation,
		},
		{
			name:    "只有空格",
			input:   "   ",
			wantErr: ErrValidation,
		},
		{
			name:  "添加成功",
			input: "  Dana ",
			want:  Member{ID: 10, Name: "Dana"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := threeMembers()
			res, m, err := l.AddMember(10, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				assert.Len(t, res.Members, 3)
				return
			}
			assert.Equal(t, tc.want, m)
			require.Len(t, res.Members, 4)
			assert.Equal(t, tc.want, res.Members[3])
			assert.Len(t, l.Members, 3)
		})
	}
}

func TestLedger_AddMemberDuplicatedID(t *testing.T) {
	_, _, err := threeMembers().AddMember(1, "Dana")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLedger_SubmitChallenge(t *testing.T) {
	testCases := []struct {
		name     string
		memberID int64
		problems func() []Problem
		wantErr  error
	}{
		{
			name:     "0 道题",
			memberID: 1,
			problems: func() []Problem { return nil },
			wantErr:  ErrValidation,
		},
		{
			name:     "1 道题",
			memberID: 1,
			problems: func() []Problem { return sixProblems()[:1] },
			wantErr:  ErrValidation,
		},
		{
			name:     "5 道题",
			memberID: 1,
			problems: func() []Problem { return sixProblems()[:5] },
			wantErr:  ErrValidation,
		},
		{
			name:     "7 道题",
			memberID: 1,
			problems: func() []Problem {
				return append(sixProblems(), Problem{Title: "extra", Difficulty: DifficultyEasy})
			},
			wantErr: ErrValidation,
		},
		{
			name:     "标题为空",
			memberID: 1,
			problems: func() []Problem {
				ps := sixProblems()
				ps[3].Title = "  "
				return ps
			},
			wantErr: ErrValidation,
		},
		{
			name:     "难度非法",
			memberID: 1,
			problems: func() []Problem {
				ps := sixProblems()
				ps[0].Difficulty = "Insane"
				return ps
			},
			wantErr: ErrValidation,
		},
		{
			name:     "成员不存在",
			memberID: 99,
			problems: sixProblems,
			wantErr:  ErrNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := threeMembers()
			res, _, err := l.SubmitChallenge(100, tc.memberID, tc.problems(), today)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, res.Challenges)
			assert.Equal(t, int64(0), res.Members[0].TotalSubmissions)
		})
	}
}

func TestLedger_SubmitChallengeSuccess(t *testing.T) {
	l := threeMembers()
	ps := sixProblems()
	ps[0].Solved = true
	ps[1].Title = "  padded  "
	res, c, err := l.SubmitChallenge(100, 2, ps, today)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.ID)
	assert.Equal(t, int64(2), c.MemberID)
	assert.Equal(t, "Member 2", c.MemberName)
	assert.Equal(t, ChallengeStatusPending, c.Status)
	assert.False(t, c.SolutionsSubmitted)
	assert.Equal(t, today, c.SubmittedDate)
	assert.Equal(t, Date("2024-03-02"), c.DueDate)
	assert.True(t, c.CompletedDate.IsZero())
	assert.True(t, c.FailedDate.IsZero())
	assert.Equal(t, 0, c.SolvedCount())
	assert.Equal(t, "padded", c.Problems[1].Title)
	assert.Equal(t, int64(1), res.Members[1].TotalSubmissions)
	assert.Equal(t, int64(0), res.Members[0].TotalSubmissions)
	require.Len(t, res.Challenges, 1)
	// 入参不会被修改
	assert.True(t, ps[0].Solved)
	assert.Empty(t, l.Challenges)
}

func TestLedger_ToggleSolved(t *testing.T) {
	l, _, err := threeMembers().SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)

	res, c, err := l.ToggleSolved(100, 2)
	require.NoError(t, err)
	assert.True(t, c.Problems[2].Solved)
	assert.False(t, l.Challenges[0].Problems[2].Solved)

	res, c, err = res.ToggleSolved(100, 2)
	require.NoError(t, err)
	assert.False(t, c.Problems[2].Solved)

	_, _, err = res.ToggleSolved(100, 6)
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = res.ToggleSolved(100, -1)
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = res.ToggleSolved(404, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	failed, _, err := res.MarkFailed(100, today)
	require.NoError(t, err)
	_, _, err = failed.ToggleSolved(100, 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func solveAll(t *testing.T, l Ledger, id int64) Ledger {
	var err error
	for i := 0; i < ProblemsPerChallenge; i++ {
		l, _, err = l.ToggleSolved(id, i)
		require.NoError(t, err)
	}
	return l
}

func TestLedger_SubmitSolutions(t *testing.T) {
	l, _, err := threeMembers().SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)

	t.Run("没有全部完成", func(t *testing.T) {
		partial, _, err := l.ToggleSolved(100, 0)
		require.NoError(t, err)
		res, _, err := partial.SubmitSolutions(100, today)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, ChallengeStatusPending, res.Challenges[0].Status)
		assert.Equal(t, int64(0), res.Members[0].Streak)
	})

	t.Run("提交成功", func(t *testing.T) {
		solved := solveAll(t, l, 100)
		res, c, err := solved.SubmitSolutions(100, "2024-03-02")
		require.NoError(t, err)
		assert.Equal(t, ChallengeStatusCompleted, c.Status)
		assert.True(t, c.SolutionsSubmitted)
		assert.Equal(t, Date("2024-03-02"), c.CompletedDate)
		assert.True(t, c.FailedDate.IsZero())
		assert.Equal(t, int64(1), res.Members[0].Streak)
		assert.Equal(t, int64(1), res.Members[0].MaxStreak)
		assert.Equal(t, threeMembers().Members[1:], res.Members[1:])

		_, _, err = res.SubmitSolutions(100, today)
		assert.ErrorIs(t, err, ErrInvalidState)
		_, _, err = res.MarkFailed(100, today)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("挑战不存在", func(t *testing.T) {
		_, _, err := l.SubmitSolutions(404, today)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLedger_SubmitSolutionsKeepsHigherMaxStreak(t *testing.T) {
	l := threeMembers()
	l.Members[0].MaxStreak = 5
	l, _, err := l.SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	l, _, err = solveAll(t, l, 100).SubmitSolutions(100, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.Members[0].Streak)
	assert.Equal(t, int64(5), l.Members[0].MaxStreak)
}

func TestLedger_MarkFailed(t *testing.T) {
	l := threeMembers()
	l.Members = append(l.Members, Member{ID: 4, Name: "Dana", Streak: 2, MaxStreak: 2})
	l.Members[0].Streak, l.Members[0].MaxStreak = 3, 4
	l, _, err := l.SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	l, _, err = l.ToggleSolved(100, 0)
	require.NoError(t, err)

	res, c, err := l.MarkFailed(100, "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, ChallengeStatusFailed, c.Status)
	assert.Equal(t, Date("2024-03-03"), c.FailedDate)
	assert.True(t, c.CompletedDate.IsZero())
	assert.False(t, c.SolutionsSubmitted)

	owner := res.Members[0]
	assert.Equal(t, int64(0), owner.Streak)
	assert.Equal(t, int64(4), owner.MaxStreak)
	assert.Equal(t, PenaltyUnit, owner.TotalPaid)
	assert.Equal(t, int64(0), owner.TotalEarned)
	for _, m := range res.Members[1:] {
		assert.Equal(t, RewardUnit, m.TotalEarned)
		assert.Equal(t, int64(0), m.TotalPaid)
	}
	assert.Equal(t, int64(2), res.Members[3].Streak)
	assert.Equal(t, int64(-100), owner.NetBalance())
	assert.Equal(t, int64(50), res.Members[1].NetBalance())
}

func TestLedger_RemoveMember(t *testing.T) {
	base := threeMembers()
	base, _, err := base.SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	base, _, err = base.SubmitChallenge(101, 2, sixProblems(), today)
	require.NoError(t, err)
	base, _, err = base.SubmitChallenge(102, 1, sixProblems(), today)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		id             int64
		force          bool
		wantErr        error
		wantMembers    []int64
		wantChallenges []int64
	}{
		{
			name:    "成员不存在",
			id:      99,
			wantErr: ErrNotFound,
		},
		{
			name:    "有挑战但没有确认",
			id:      1,
			wantErr: ErrConfirmationRequired,
		},
		{
			name:           "确认后级联删除",
			id:             1,
			force:          true,
			wantMembers:    []int64{2, 3},
			wantChallenges: []int64{101},
		},
		{
			name:           "没有挑战直接删除",
			id:             3,
			wantMembers:    []int64{1, 2},
			wantChallenges: []int64{100, 101, 102},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := base.RemoveMember(tc.id, tc.force)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				assert.Equal(t, base, res)
				return
			}
			var members, challenges []int64
			for _, m := range res.Members {
				members = append(members, m.ID)
			}
			for _, c := range res.Challenges {
				challenges = append(challenges, c.ID)
			}
			assert.Equal(t, tc.wantMembers, members)
			assert.Equal(t, tc.wantChallenges, challenges)
		})
	}
}

func TestLedger_RemoveMemberConfirmationCount(t *testing.T) {
	l, _, err := threeMembers().SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	l, _, err = l.SubmitChallenge(101, 1, sixProblems(), today)
	require.NoError(t, err)
	assert.Equal(t, 2, l.AffectedChallenges(1))
	assert.Equal(t, 0, l.AffectedChallenges(2))

	_, err = l.RemoveMember(1, false)
	var ce *ConfirmationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Affected)
	assert.Equal(t, int64(1), ce.MemberID)
}

func TestLedger_RenameMember(t *testing.T) {
	l, _, err := threeMembers().SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	res, m, err := l.RenameMember(1, " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", m.Name)
	assert.Equal(t, "Alice", res.Members[0].Name)
	// 挑战中的名称是提交时的快照
	assert.Equal(t, "Member 1", res.Challenges[0].MemberName)

	_, _, err = l.RenameMember(1, " ")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = l.RenameMember(9, "Bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

// 3 个默认成员，A 先完成一次挑战，再失败一次
func TestLedger_Scenario(t *testing.T) {
	l := threeMembers()
	l, _, err := l.SubmitChallenge(100, 1, sixProblems(), today)
	require.NoError(t, err)
	l, _, err = solveAll(t, l, 100).SubmitSolutions(100, today)
	require.NoError(t, err)

	a, b, c := l.Members[0], l.Members[1], l.Members[2]
	assert.Equal(t, Member{ID: 1, Name: "Member 1", Streak: 1, MaxStreak: 1, TotalSubmissions: 1}, a)
	assert.Equal(t, Member{ID: 2, Name: "Member 2"}, b)
	assert.Equal(t, Member{ID: 3, Name: "Member 3"}, c)

	l, _, err = l.SubmitChallenge(101, 1, sixProblems(), today.AddDays(1))
	require.NoError(t, err)
	l, _, err = l.MarkFailed(101, today.AddDays(2))
	require.NoError(t, err)

	a, b, c = l.Members[0], l.Members[1], l.Members[2]
	assert.Equal(t, Member{ID: 1, Name: "Member 1", TotalPaid: 100, Streak: 0, MaxStreak: 1, TotalSubmissions: 2}, a)
	assert.Equal(t, Member{ID: 2, Name: "Member 2", TotalEarned: 50}, b)
	assert.Equal(t, Member{ID: 3, Name: "Member 3", TotalEarned: 50}, c)
	for _, m := range l.Members {
		assert.True(t, m.Consistent())
	}
}

func TestLedger_InvariantsHoldAcrossOperations(t *testing.T) {
	l := threeMembers()
	var id int64 = 100
	for round := 0; round < 20; round++ {
		owner := l.Members[round%len(l.Members)].ID
		var err error
		l, _, err = l.SubmitChallenge(id, owner, sixProblems(), today)
		require.NoError(t, err)
		if round%3 == 0 {
			l, _, err = l.MarkFailed(id, today)
		} else {
			l, _, err = solveAll(t, l, id).SubmitSolutions(id, today)
		}
		require.NoError(t, err)
		for _, m := range l.Members {
			require.True(t, m.Consistent(), "%+v", m)
		}
		id++
	}
}
