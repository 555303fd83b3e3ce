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

package job

import (
	"context"
	"fmt"

	"github.com/ecodeclub/dsatracker/internal/tracker/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*OverdueChallengesJob)(nil)

// OverdueChallengesJob 只记录超期未完成的挑战，失败需要成员手动标记
type OverdueChallengesJob struct {
	svc    service.Service
	logger *elog.Component
}

func NewOverdueChallengesJob(svc service.Service) *OverdueChallengesJob {
	return &OverdueChallengesJob{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (j *OverdueChallengesJob) Name() string {
	return "OverdueChallengesJob"
}

func (j *OverdueChallengesJob) Run(ctx context.Context) error {
	overdue, err := j.svc.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("查询超期挑战失败: %w", err)
	}
	for _, c := range overdue {
		j.logger.Warn("挑战已超期",
			elog.Int64("challengeId", c.ID),
			elog.Int64("memberId", c.MemberID),
			elog.String("memberName", c.MemberName),
			elog.String("dueDate", c.DueDate.String()),
			elog.Int("solved", c.SolvedCount()))
	}
	j.logger.Info("超期挑战检查完成", elog.Int("count", len(overdue)))
	return nil
}
