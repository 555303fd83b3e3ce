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

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsBuilder struct {
	namespace string
	histogram *prometheus.HistogramVec
	counter   *prometheus.CounterVec
}

// NewMetricsBuilder 同一个 namespace 在进程内只能创建一次，重复注册会 panic
func NewMetricsBuilder(namespace string) *MetricsBuilder {
	labels := []string{"method", "path", "status_code"}
	return &MetricsBuilder{
		namespace: namespace,
		histogram: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
		}, labels),
		counter: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP 请求总数",
		}, labels),
	}
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			// 未匹配路由的请求统一归类，避免标签基数失控
			path = "unknown"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		method := ctx.Request.Method
		b.histogram.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		b.counter.WithLabelValues(method, path, status).Inc()
	}
}
