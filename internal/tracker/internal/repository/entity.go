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
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

// 以下结构体是持久化的 JSON 格式，字段名不能随意修改

type Member struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	TotalPaid        int64  `json:"totalPaid"`
	TotalEarned      int64  `json:"totalEarned"`
	Streak           int64  `json:"streak"`
	MaxStreak        int64  `json:"maxStreak"`
	TotalSubmissions int64  `json:"totalSubmissions"`
}

type Problem struct {
	Title      string `json:"title"`
	Link       string `json:"link,omitempty"`
	Difficulty string `json:"difficulty"`
	Solved     bool   `json:"solved"`
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
}

func toMemberEntities(ms []domain.Member) []Member {
	return slice.Map(ms, func(idx int, src domain.Member) Member {
		return Member{
			ID:               src.ID,
			Name:             src.Name,
			TotalPaid:        src.TotalPaid,
			TotalEarned:      src.TotalEarned,
			Streak:           src.Streak,
			MaxStreak:        src.MaxStreak,
			TotalSubmissions: src.TotalSubmissions,
		}
	})
}

func toDomainMembers(ms []Member) []domain.Member {
	return slice.Map(ms, func(idx int, src Member) domain.Member {
		return domain.Member{
			ID:               src.ID,
			Name:             src.Name,
			TotalPaid:        src.TotalPaid,
			TotalEarned:      src.TotalEarned,
			Streak:           src.Streak,
			MaxStreak:        src.MaxStreak,
			TotalSubmissions: src.TotalSubmissions,
		}
	})
}

func toChallengeEntities(cs []domain.Challenge) []Challenge {
	return slice.Map(cs, func(idx int, src domain.Challenge) Challenge {
		return Challenge{
			ID:         src.ID,
			MemberID:   src.MemberID,
			MemberName: src.MemberName,
			Problems: slice.Map(src.Problems, func(idx int, p domain.Problem) Problem {
				return Problem{
					Title:      p.Title,
					Link:       p.Link,
					Difficulty: string(p.Difficulty),
					Solved:     p.Solved,
				}
			}),
			SubmittedDate:      src.SubmittedDate.String(),
			DueDate:            src.DueDate.String(),
			Status:             string(src.Status),
			SolutionsSubmitted: src.SolutionsSubmitted,
			CompletedDate:      src.CompletedDate.String(),
			FailedDate:         src.FailedDate.String(),
		}
	})
}

func toDomainChallenges(cs []Challenge) []domain.Challenge {
	return slice.Map(cs, func(idx int, src Challenge) domain.Challenge {
		return domain.Challenge{
			ID:         src.ID,
			MemberID:   src.MemberID,
			MemberName: src.MemberName,
			Problems: slice.Map(src.Problems, func(idx int, p Problem) domain.Problem {
				return domain.Problem{
					Title:      p.Title,
					Link:       p.Link,
					Difficulty: domain.Difficulty(p.Difficulty),
					Solved:     p.Solved,
				}
			}),
			SubmittedDate:      domain.Date(src.SubmittedDate),
			DueDate:            domain.Date(src.DueDate),
			Status:             domain.ChallengeStatus(src.Status),
			SolutionsSubmitted: src.SolutionsSubmitted,
			CompletedDate:      domain.Date(src.CompletedDate),
			FailedDate:         domain.Date(src.FailedDate),
		}
	})
}
