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

package web

import (
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

type Member struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	TotalPaid        int64  `json:"totalPaid"`
	TotalEarned      int64  `json:"totalEarned"`
	Streak           int64  `json:"streak"`
	MaxStreak        int64  `json:"maxStreak"`
	TotalSubmissions int64  `json:"totalSubmissions"`
	NetBalance       int64  `json:"netBalance"`
}

func newMember(m domain.Member) Member {
	return Member{
		ID:               m.ID,
		Name:             m.Name,
		TotalPaid:        m.TotalPaid,
		TotalEarned:      m.TotalEarned,
		Streak:           m.Streak,
		MaxStreak:        m.MaxStreak,
		TotalSubmissions: m.TotalSubmissions,
		NetBalance:       m.NetBalance(),
	}
}

type Problem struct {
	Title      string `json:"title"`
	Link       string `json:"link,omitempty"`
	Difficulty string `json:"difficulty"`
	Solved     bool   `json:"solved"`
}

func (p Problem) toDomain() domain.Problem {
	return domain.Problem{
		Title:      p.Title,
		Link:       p.Link,
		Difficulty: domain.Difficulty(p.Difficulty),
		Solved:     p.Solved,
	}
}

func newProblems(ps []domain.Problem) []Problem {
	return slice.Map(ps, func(idx int, src domain.Problem) Problem {
		return Problem{
			Title:      src.Title,
			Link:       src.Link,
			Difficulty: string(src.Difficulty),
			Solved:     src.Solved,
		}
	})
}

type Challenge struct {
	ID                 int64     `json:"id"`
	MemberID           int64     `json:"memberId"`
	MemberName         string    `json:"memberName"`
	Problems           []Problem `json:"problems"`
	SubmittedDate      string    `json:"submittedDate"`
	DueDate            string    `json:"dueDate"`
	Status             string    `json:"status"`
	SolutionsSubmitted bool      `json:"solutionsSubmitted"`
	CompletedDate      string    `json:"completedDate,omitempty"`
	FailedDate         string    `json:"failedDate,omitempty"`
	Solved             int       `json:"solved"`
}

func newChallenge(c domain.Challenge) Challenge {
	return Challenge{
		ID:                 c.ID,
		MemberID:           c.MemberID,
		MemberName:         c.MemberName,
		Problems:           newProblems(c.Problems),
		SubmittedDate:      c.SubmittedDate.String(),
		DueDate:            c.DueDate.String(),
		Status:             string(c.Status),
		SolutionsSubmitted: c.SolutionsSubmitted,
		CompletedDate:      c.CompletedDate.String(),
		FailedDate:         c.FailedDate.String(),
		Solved:             c.SolvedCount(),
	}
}

func newChallenges(cs []domain.Challenge) []Challenge {
	return slice.Map(cs, func(idx int, src domain.Challenge) Challenge {
		return newChallenge(src)
	})
}

type Progress struct {
	ChallengeID int64     `json:"challengeId"`
	Problems    []Problem `json:"problems"`
	Solved      int       `json:"solved"`
	Total       int       `json:"total"`
	Percent     float64   `json:"percent"`
}

type Snapshot struct {
	Members    []Member    `json:"members"`
	Challenges []Challenge `json:"challenges"`
}

type AddMemberReq struct {
	Name string `json:"name"`
}

type RenameMemberReq struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MemberIDReq struct {
	ID int64 `json:"id"`
}

type RemoveMemberReq struct {
	ID    int64 `json:"id"`
	Force bool  `json:"force"`
}

type RemoveMemberResp struct {
	RemovedChallenges int `json:"removedChallenges"`
}

type ChallengeListReq struct {
	MemberID int64  `json:"memberId"`
	Status   string `json:"status"`
}

type ChallengeIDReq struct {
	ID int64 `json:"id"`
}

type SubmitChallengeReq struct {
	MemberID int64     `json:"memberId"`
	Problems []Problem `json:"problems"`
}

type ToggleSolvedReq struct {
	ID    int64 `json:"id"`
	Index int   `json:"index"`
}
