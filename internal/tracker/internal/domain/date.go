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

import "time"

// Date 日历日期，格式为 YYYY-MM-DD，按 UTC 计算
type Date string

func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(time.DateOnly))
}

func (d Date) AddDays(n int) Date {
	t, err := time.Parse(time.DateOnly, string(d))
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// Before 同一格式下字典序即时间顺序
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}
