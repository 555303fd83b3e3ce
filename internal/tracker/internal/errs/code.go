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

package errs

// 账本模块错误码前缀 5200
var (
	SystemError          = ErrorCode{Code: 520001, Msg: "系统错误"}
	ValidationError      = ErrorCode{Code: 520002, Msg: "参数错误"}
	NotFoundError        = ErrorCode{Code: 520003, Msg: "记录不存在"}
	InvalidStateError    = ErrorCode{Code: 520004, Msg: "挑战已经结束"}
	ConfirmationRequired = ErrorCode{Code: 520005, Msg: "该成员还有挑战记录，需要确认后强制删除"}
	PersistenceError     = ErrorCode{Code: 520006, Msg: "数据已更新但保存失败，请稍后重试"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
