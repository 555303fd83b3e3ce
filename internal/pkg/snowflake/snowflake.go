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

package snowflake

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/ekit/syncx"
)

//go:generate mockgen -source=./snowflake.go -destination=./mocks/snowflake.mock.go -package=snowflakemocks SnowFlake
type SnowFlake interface {
	Generate(app App) (ID, error)
}

// App 同一个节点上的不同业务，占用 node 段的高 5 位
type App uint

const (
	maxNode uint = 31
	maxApp  uint = 31
)

var (
	ErrExceedNode = errors.New("node超出限制")
	ErrExceedApp  = errors.New("app超出限制")
	ErrUnknownApp = errors.New("未知的app")
)

// +---------------------------------------------------------------------------------------+
// | 1 Bit Unused | 41 Bit Timestamp |  5 Bit APPID | 5 Bit NodeID  |   12 Bit Sequence ID |
// +---------------------------------------------------------------------------------------+

type Generator struct {
	nodes syncx.Map[App, *snowflake.Node]
}

// NewGenerator apps 表示要注册的业务数量，从 0 开始编号
func NewGenerator(nodeID uint, apps uint) (*Generator, error) {
	if nodeID > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeID)
	}
	if apps > maxApp+1 {
		return nil, fmt.Errorf("%w: %d", ErrExceedApp, apps)
	}
	g := &Generator{}
	for i := uint(0); i < apps; i++ {
		n, err := snowflake.NewNode(int64(i<<5 | nodeID))
		if err != nil {
			return nil, err
		}
		g.nodes.Store(App(i), n)
	}
	return g, nil
}

func (g *Generator) Generate(app App) (ID, error) {
	n, ok := g.nodes.Load(app)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownApp, app)
	}
	return ID(n.Generate()), nil
}

type ID int64

func (f ID) App() App {
	return App(snowflake.ID(f).Node() >> 5)
}

// Time ID 中携带的生成时间，精度为毫秒
func (f ID) Time() time.Time {
	return time.UnixMilli(snowflake.ID(f).Time())
}

func (f ID) Int64() int64 {
	return int64(f)
}
