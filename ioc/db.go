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

package ioc

import (
	"context"
	"database/sql"
	"time"

	"github.com/ecodeclub/dsatracker/internal/pkg/database"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"
)

func InitDB() *egorm.Component {
	WaitForDBSetup(econf.GetString("mysql.dsn"))
	db := egorm.Load("mysql").Build()
	if err := db.Use(database.NewGormTracingPlugin()); err != nil {
		panic(err)
	}
	return db
}

// WaitForDBSetup 本地用 docker 启动 MySQL 时需要等待一段时间才能连上
func WaitForDBSetup(dsn string) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}
	defer sqlDB.Close()
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, 10*time.Second, 10)
	if err != nil {
		panic(err)
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			panic("WaitForDBSetup 重试失败......")
		}
		time.Sleep(next)
	}
}
