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

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Problem 挑战中的一道题，没有独立的 ID
type Problem struct {
	Title      string
	Link       string
	Difficulty Difficulty
	Solved     bool
}

// ValidateProblems 每个挑战必须恰好 6 道题，且标题和难度都合法
func ValidateProblems(problems []Problem) error {
	if len(problems) != ProblemsPerChallenge {
		return fmt.Errorf("%w: 需要 %d 道题，实际 %d 道", ErrValidation, ProblemsPerChallenge, len(problems))
	}
	for i, p := range problems {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("%w: 第 %d 道题标题为空", ErrValidation, i+1)
		}
		if !p.Difficulty.Valid() {
			return fmt.Errorf("%w: 第 %d 道题难度非法 %q", ErrValidation, i+1, p.Difficulty)
		}
	}
	return nil
}
