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

package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submittedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dsa",
		Name:      "challenges_submitted_total",
		Help:      "提交的挑战总数",
	})
	resolvedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dsa",
		Name:      "challenges_resolved_total",
		Help:      "完成或者失败的挑战总数",
	}, []string{"status"})
	persistFailureCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dsa",
		Name:      "persist_failures_total",
		Help:      "写入存储失败的次数",
	})
)
