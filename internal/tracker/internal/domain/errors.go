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
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("参数校验失败")
	ErrNotFound             = errors.New("记录不存在")
	ErrInvalidState         = errors.New("当前状态不允许该操作")
	ErrConfirmationRequired = errors.New("删除成员需要确认")
)

// ConfirmationError 删除仍然拥有挑战记录的成员时返回，Affected 为会被级联删除的挑战数量
type ConfirmationError struct {
	MemberID int64
	Affected int
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("%s: 成员 %d 拥有 %d 个挑战", ErrConfirmationRequired.Error(), e.MemberID, e.Affected)
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrConfirmationRequired
}
