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
	"strings"
)

const (
	// PenaltyUnit 挑战失败时成员需要支付的金额
	PenaltyUnit int64 = 100
	// RewardUnit 挑战失败时其他每个成员获得的金额
	RewardUnit int64 = 50
)

// Ledger 成员和挑战两个集合。
// 所有状态变更都返回新的 Ledger，失败时原值保持不变。
type Ledger struct {
	Members    []Member
	Challenges []Challenge
}

func (l Ledger) Clone() Ledger {
	res := Ledger{
		Members:    make([]Member, len(l.Members)),
		Challenges: make([]Challenge, 0, len(l.Challenges)),
	}
	copy(res.Members, l.Members)
	for _, c := range l.Challenges {
		res.Challenges = append(res.Challenges, c.clone())
	}
	return res
}

func (l Ledger) memberIndex(id int64) int {
	for i := range l.Members {
		if l.Members[i].ID == id {
			return i
		}
	}
	return -1
}

func (l Ledger) challengeIndex(id int64) int {
	for i := range l.Challenges {
		if l.Challenges[i].ID == id {
			return i
		}
	}
	return -1
}

func (l Ledger) Member(id int64) (Member, error) {
	idx := l.memberIndex(id)
	if idx < 0 {
		return Member{}, fmt.Errorf("%w: 成员 %d", ErrNotFound, id)
	}
	return l.Members[idx], nil
}

func (l Ledger) Challenge(id int64) (Challenge, error) {
	idx := l.challengeIndex(id)
	if idx < 0 {
		return Challenge{}, fmt.Errorf("%w: 挑战 %d", ErrNotFound, id)
	}
	return l.Challenges[idx].clone(), nil
}

func (l Ledger) AddMember(id int64, name string) (Ledger, Member, error) {
	m, err := NewMember(id, name)
	if err != nil {
		return l, Member{}, err
	}
	if l.memberIndex(id) >= 0 {
		return l, Member{}, fmt.Errorf("%w: 成员 ID %d 已存在", ErrValidation, id)
	}
	res := l.Clone()
	res.Members = append(res.Members, m)
	return res, m, nil
}

// RenameMember 只修改成员名称，已有挑战中的 MemberName 不受影响
func (l Ledger) RenameMember(id int64, name string) (Ledger, Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l, Member{}, fmt.Errorf("%w: 成员名称不能为空", ErrValidation)
	}
	idx := l.memberIndex(id)
	if idx < 0 {
		return l, Member{}, fmt.Errorf("%w: 成员 %d", ErrNotFound, id)
	}
	res := l.Clone()
	res.Members[idx].Name = name
	return res, res.Members[idx], nil
}

// AffectedChallenges 删除成员时会被级联删除的挑战数量
func (l Ledger) AffectedChallenges(memberID int64) int {
	cnt := 0
	for _, c := range l.Challenges {
		if c.MemberID == memberID {
			cnt++
		}
	}
	return cnt
}

func (l Ledger) RemoveMember(id int64, force bool) (Ledger, error) {
	if l.memberIndex(id) < 0 {
		return l, fmt.Errorf("%w: 成员 %d", ErrNotFound, id)
	}
	if affected := l.AffectedChallenges(id); affected > 0 && !force {
		return l, &ConfirmationError{MemberID: id, Affected: affected}
	}
	res := Ledger{
		Members:    make([]Member, 0, len(l.Members)),
		Challenges: make([]Challenge, 0, len(l.Challenges)),
	}
	for _, m := range l.Members {
		if m.ID != id {
			res.Members = append(res.Members, m)
		}
	}
	for _, c := range l.Challenges {
		if c.MemberID != id {
			res.Challenges = append(res.Challenges, c.clone())
		}
	}
	return res, nil
}

func (l Ledger) SubmitChallenge(id, memberID int64, problems []Problem, today Date) (Ledger, Challenge, error) {
	idx := l.memberIndex(memberID)
	if idx < 0 {
		return l, Challenge{}, fmt.Errorf("%w: 成员 %d", ErrNotFound, memberID)
	}
	if err := ValidateProblems(problems); err != nil {
		return l, Challenge{}, err
	}
	if l.challengeIndex(id) >= 0 {
		return l, Challenge{}, fmt.Errorf("%w: 挑战 ID %d 已存在", ErrValidation, id)
	}
	ps := make([]Problem, 0, len(problems))
	for _, p := range problems {
		ps = append(ps, Problem{
			Title:      strings.TrimSpace(p.Title),
			Link:       strings.TrimSpace(p.Link),
			Difficulty: p.Difficulty,
		})
	}
	res := l.Clone()
	c := Challenge{
		ID:            id,
		MemberID:      memberID,
		MemberName:    res.Members[idx].Name,
		Problems:      ps,
		SubmittedDate: today,
		DueDate:       today.AddDays(1),
		Status:        ChallengeStatusPending,
	}
	res.Members[idx].TotalSubmissions++
	res.Challenges = append(res.Challenges, c)
	return res, c.clone(), nil
}

func (l Ledger) pendingChallenge(id int64) (int, error) {
	idx := l.challengeIndex(id)
	if idx < 0 {
		return -1, fmt.Errorf("%w: 挑战 %d", ErrNotFound, id)
	}
	if !l.Challenges[idx].Pending() {
		return -1, fmt.Errorf("%w: 挑战 %d 已经是 %s", ErrInvalidState, id, l.Challenges[idx].Status)
	}
	return idx, nil
}

func (l Ledger) ToggleSolved(id int64, index int) (Ledger, Challenge, error) {
	idx, err := l.pendingChallenge(id)
	if err != nil {
		return l, Challenge{}, err
	}
	if index < 0 || index >= len(l.Challenges[idx].Problems) {
		return l, Challenge{}, fmt.Errorf("%w: 题目下标 %d 越界", ErrValidation, index)
	}
	res := l.Clone()
	p := &res.Challenges[idx].Problems[index]
	p.Solved = !p.Solved
	return res, res.Challenges[idx].clone(), nil
}

func (l Ledger) SubmitSolutions(id int64, today Date) (Ledger, Challenge, error) {
	idx, err := l.pendingChallenge(id)
	if err != nil {
		return l, Challenge{}, err
	}
	c := l.Challenges[idx]
	if !c.AllSolved() {
		return l, Challenge{}, fmt.Errorf("%w: 还有 %d 道题没有完成",
			ErrValidation, len(c.Problems)-c.SolvedCount())
	}
	res := l.Clone()
	rc := &res.Challenges[idx]
	rc.Status = ChallengeStatusCompleted
	rc.SolutionsSubmitted = true
	rc.CompletedDate = today
	if mi := res.memberIndex(rc.MemberID); mi >= 0 {
		m := &res.Members[mi]
		m.Streak++
		m.MaxStreak = max(m.MaxStreak, m.Streak)
	}
	return res, rc.clone(), nil
}

// MarkFailed 失败的成员支付 PenaltyUnit 并清零连胜，其余每个成员获得 RewardUnit
func (l Ledger) MarkFailed(id int64, today Date) (Ledger, Challenge, error) {
	idx, err := l.pendingChallenge(id)
	if err != nil {
		return l, Challenge{}, err
	}
	res := l.Clone()
	rc := &res.Challenges[idx]
	rc.Status = ChallengeStatusFailed
	rc.FailedDate = today
	for i := range res.Members {
		m := &res.Members[i]
		if m.ID == rc.MemberID {
			m.TotalPaid += PenaltyUnit
			m.Streak = 0
			continue
		}
		m.TotalEarned += RewardUnit
	}
	return res, rc.clone(), nil
}
