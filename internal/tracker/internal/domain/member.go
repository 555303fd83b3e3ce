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

type Member struct {
	ID               int64
	Name             string
	TotalPaid        int64
	TotalEarned      int64
	Streak           int64
	MaxStreak        int64
	TotalSubmissions int64
}

// NewMember 创建计数全部为零的成员
func NewMember(id int64, name string) (Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Member{}, fmt.Errorf("%w: 成员名称不能为空", ErrValidation)
	}
	return Member{ID: id, Name: name}, nil
}

// NetBalance 收入减去支出，可能为负数，不落库
func (m Member) NetBalance() int64 {
	return m.TotalEarned - m.TotalPaid
}

func (m Member) Consistent() bool {
	return m.Streak >= 0 &&
		m.MaxStreak >= m.Streak &&
		m.TotalPaid >= 0 &&
		m.TotalEarned >= 0 &&
		m.TotalSubmissions >= 0
}

// DefaultMemberCount 首次启动时初始化的成员数量
const DefaultMemberCount = 3

// DefaultMembers 首次启动时使用的 Member 1..3
func DefaultMembers(ids [DefaultMemberCount]int64) []Member {
	res := make([]Member, 0, DefaultMemberCount)
	for i, id := range ids {
		res = append(res, Member{ID: id, Name: fmt.Sprintf("Member %d", i+1)})
	}
	return res
}
