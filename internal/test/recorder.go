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

package test

import (
	"encoding/json"
	"net/http/httptest"
)

// Result 和 ginx.Result 结构一致，Data 的类型由测试指定
type Result[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

type JSONResponseRecorder[T any] struct {
	*httptest.ResponseRecorder
}

func NewJSONResponseRecorder[T any]() JSONResponseRecorder[T] {
	return JSONResponseRecorder[T]{
		ResponseRecorder: httptest.NewRecorder(),
	}
}

// MustScan 响应体无法解析时直接 panic
func (r JSONResponseRecorder[T]) MustScan() Result[T] {
	var res Result[T]
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		panic(err)
	}
	return res
}
