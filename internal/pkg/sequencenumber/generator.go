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

package sequencenumber

import (
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Length 生成的序列号长度
const Length = 32

// Generator 序列号由毫秒时间戳、业务 ID 的后四位和 shortuuid 组成，截断到 Length 位
type Generator struct {
	now  func() time.Time
	uuid func() string
}

func NewGenerator() *Generator {
	return &Generator{
		now:  time.Now,
		uuid: shortuuid.New,
	}
}

func (g *Generator) Generate(bizID int64) string {
	if bizID < 0 {
		bizID = -bizID
	}
	sn := fmt.Sprintf("%d%04d%s", g.now().UnixMilli(), bizID%10000, g.uuid())
	if len(sn) > Length {
		sn = sn[:Length]
	}
	return sn
}
