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
	"cmp"
	"slices"
)

// Ranking 按连胜倒序，连胜相同时保持原有顺序
func (l Ledger) Ranking() []Member {
	res := slices.Clone(l.Members)
	slices.SortStableFunc(res, func(a, b Member) int {
		return cmp.Compare(b.Streak, a.Streak)
	})
	return res
}

// ChallengeFilter 零值表示不过滤
type ChallengeFilter struct {
	MemberID int64
	Status   ChallengeStatus
}

func (f ChallengeFilter) match(c Challenge) bool {
	if f.MemberID != 0 && c.MemberID != f.MemberID {
		return false
	}
	return f.Status == "" || c.Status == f.Status
}

// History 按提交日期倒序，同一天内后提交的在前
func (l Ledger) History(f ChallengeFilter) []Challenge {
	res := make([]Challenge, 0, len(l.Challenges))
	for i := len(l.Challenges) - 1; i >= 0; i-- {
		if f.match(l.Challenges[i]) {
			res = append(res, l.Challenges[i].clone())
		}
	}
	slices.SortStableFunc(res, func(a, b Challenge) int {
		return cmp.Compare(b.SubmittedDate, a.SubmittedDate)
	})
	return res
}

// Overdue 截止日期早于 today 仍未结束的挑战，只读
func (l Ledger) Overdue(today Date) []Challenge {
	var res []Challenge
	for _, c := range l.Challenges {
		if c.Pending() && c.DueDate.Before(today) {
			res = append(res, c.clone())
		}
	}
	return res
}
