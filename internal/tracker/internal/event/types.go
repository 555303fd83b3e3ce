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

package event

const ChallengeResolvedTopic = "dsa_challenge_resolved_events"

// ChallengeResolvedEvent 挑战完成或失败后发出
type ChallengeResolvedEvent struct {
	Key         string `json:"key"`
	ChallengeID int64  `json:"challengeId"`
	MemberID    int64  `json:"memberId"`
	MemberName  string `json:"memberName"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	// Penalty 成员支付的金额，只有失败时才非零
	Penalty int64 `json:"penalty"`
	// Reward 每个受益成员获得的金额
	Reward        int64   `json:"reward"`
	Beneficiaries []int64 `json:"beneficiaries"`
}
