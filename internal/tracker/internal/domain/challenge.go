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

const ProblemsPerChallenge = 6

type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusFailed    ChallengeStatus = "failed"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeStatusPending, ChallengeStatusCompleted, ChallengeStatusFailed:
		return true
	default:
		return false
	}
}

func (s ChallengeStatus) IsTerminal() bool {
	return s == ChallengeStatusCompleted || s == ChallengeStatusFailed
}

type Challenge struct {
	ID       int64
	MemberID int64
	// MemberName 提交时的成员名称快照，成员改名后不会同步
	MemberName         string
	Problems           []Problem
	SubmittedDate      Date
	DueDate            Date
	Status             ChallengeStatus
	SolutionsSubmitted bool
	CompletedDate      Date
	FailedDate         Date
}

func (c Challenge) SolvedCount() int {
	cnt := 0
	for _, p := range c.Problems {
		if p.Solved {
			cnt++
		}
	}
	return cnt
}

func (c Challenge) AllSolved() bool {
	return c.SolvedCount() == len(c.Problems)
}

func (c Challenge) Pending() bool {
	return c.Status == ChallengeStatusPending
}

func (c Challenge) clone() Challenge {
	res := c
	res.Problems = make([]Problem, len(c.Problems))
	copy(res.Problems, c.Problems)
	return res
}

// Progress 进行中挑战的完成进度
type Progress struct {
	ChallengeID int64
	Problems    []Problem
	Solved      int
	Total       int
	Percent     float64
}

func (c Challenge) Progress() Progress {
	solved := c.SolvedCount()
	return Progress{
		ChallengeID: c.ID,
		Problems:    c.clone().Problems,
		Solved:      solved,
		Total:       ProblemsPerChallenge,
		Percent:     float64(solved) / ProblemsPerChallenge * 100,
	}
}
