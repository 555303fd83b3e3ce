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

package web

import (
	"errors"

	"github.com/ecodeclub/dsatracker/internal/tracker/internal/domain"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/errs"
	"github.com/ecodeclub/dsatracker/internal/tracker/internal/service"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	svc    service.Service
	logger *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

// PublicRoutes 没有登录态，所有接口都是公开的
func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/dsa")
	g.GET("/snapshot", ginx.W(h.Snapshot))

	m := g.Group("/member")
	m.GET("/ranking", ginx.W(h.Ranking))
	m.POST("/add", ginx.B[AddMemberReq](h.AddMember))
	m.POST("/rename", ginx.B[RenameMemberReq](h.RenameMember))
	m.POST("/affected", ginx.B[MemberIDReq](h.AffectedChallenges))
	m.POST("/remove", ginx.B[RemoveMemberReq](h.RemoveMember))

	c := g.Group("/challenge")
	c.POST("/list", ginx.B[ChallengeListReq](h.Challenges))
	c.POST("/detail", ginx.B[ChallengeIDReq](h.Detail))
	c.POST("/progress", ginx.B[ChallengeIDReq](h.Progress))
	c.POST("/submit", ginx.B[SubmitChallengeReq](h.Submit))
	c.POST("/toggle", ginx.B[ToggleSolvedReq](h.Toggle))
	c.POST("/solutions", ginx.B[ChallengeIDReq](h.SubmitSolutions))
	c.POST("/fail", ginx.B[ChallengeIDReq](h.MarkFailed))
}

func (h *Handler) Snapshot(ctx *ginx.Context) (ginx.Result, error) {
	l, err := h.svc.Snapshot(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Snapshot{
			Members: slice.Map(l.Members, func(idx int, src domain.Member) Member {
				return newMember(src)
			}),
			Challenges: newChallenges(l.Challenges),
		},
	}, nil
}

func (h *Handler) Ranking(ctx *ginx.Context) (ginx.Result, error) {
	ms, err := h.svc.Ranking(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: slice.Map(ms, func(idx int, src domain.Member) Member {
			return newMember(src)
		}),
	}, nil
}

func (h *Handler) AddMember(ctx *ginx.Context, req AddMemberReq) (ginx.Result, error) {
	m, err := h.svc.AddMember(ctx, req.Name)
	if err != nil {
		return h.errorResult(err, newMember(m))
	}
	return ginx.Result{Data: newMember(m)}, nil
}

func (h *Handler) RenameMember(ctx *ginx.Context, req RenameMemberReq) (ginx.Result, error) {
	m, err := h.svc.RenameMember(ctx, req.ID, req.Name)
	if err != nil {
		return h.errorResult(err, newMember(m))
	}
	return ginx.Result{Data: newMember(m)}, nil
}

func (h *Handler) AffectedChallenges(ctx *ginx.Context, req MemberIDReq) (ginx.Result, error) {
	cnt, err := h.svc.AffectedChallenges(ctx, req.ID)
	if err != nil {
		return h.errorResult(err, nil)
	}
	return ginx.Result{Data: cnt}, nil
}

func (h *Handler) RemoveMember(ctx *ginx.Context, req RemoveMemberReq) (ginx.Result, error) {
	cnt, err := h.svc.RemoveMember(ctx, req.ID, req.Force)
	if err != nil {
		return h.errorResult(err, RemoveMemberResp{RemovedChallenges: cnt})
	}
	return ginx.Result{Data: RemoveMemberResp{RemovedChallenges: cnt}}, nil
}

func (h *Handler) Challenges(ctx *ginx.Context, req ChallengeListReq) (ginx.Result, error) {
	cs, err := h.svc.Challenges(ctx, domain.ChallengeFilter{
		MemberID: req.MemberID,
		Status:   domain.ChallengeStatus(req.Status),
	})
	if err != nil {
		return h.errorResult(err, nil)
	}
	return ginx.Result{Data: newChallenges(cs)}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req ChallengeIDReq) (ginx.Result, error) {
	c, err := h.svc.Challenge(ctx, req.ID)
	if err != nil {
		return h.errorResult(err, nil)
	}
	return ginx.Result{Data: newChallenge(c)}, nil
}

func (h *Handler) Progress(ctx *ginx.Context, req ChallengeIDReq) (ginx.Result, error) {
	p, err := h.svc.Progress(ctx, req.ID)
	if err != nil {
		return h.errorResult(err, nil)
	}
	return ginx.Result{
		Data: Progress{
			ChallengeID: p.ChallengeID,
			Problems:    newProblems(p.Problems),
			Solved:      p.Solved,
			Total:       p.Total,
			Percent:     p.Percent,
		},
	}, nil
}

func (h *Handler) Submit(ctx *ginx.Context, req SubmitChallengeReq) (ginx.Result, error) {
	problems := slice.Map(req.Problems, func(idx int, src Problem) domain.Problem {
		return src.toDomain()
	})
	c, err := h.svc.SubmitChallenge(ctx, req.MemberID, problems)
	if err != nil {
		return h.errorResult(err, newChallenge(c))
	}
	return ginx.Result{Data: newChallenge(c)}, nil
}

func (h *Handler) Toggle(ctx *ginx.Context, req ToggleSolvedReq) (ginx.Result, error) {
	c, err := h.svc.ToggleSolved(ctx, req.ID, req.Index)
	if err != nil {
		return h.errorResult(err, newChallenge(c))
	}
	return ginx.Result{Data: newChallenge(c)}, nil
}

func (h *Handler) SubmitSolutions(ctx *ginx.Context, req ChallengeIDReq) (ginx.Result, error) {
	c, err := h.svc.SubmitSolutions(ctx, req.ID)
	if err != nil {
		return h.errorResult(err, newChallenge(c))
	}
	return ginx.Result{Data: newChallenge(c)}, nil
}

func (h *Handler) MarkFailed(ctx *ginx.Context, req ChallengeIDReq) (ginx.Result, error) {
	c, err := h.svc.MarkFailed(ctx, req.ID)
	if err != nil {
		return h.errorResult(err, newChallenge(c))
	}
	return ginx.Result{Data: newChallenge(c)}, nil
}

// errorResult 业务错误返回 200 和对应的错误码，只有状态已经更新但持久化失败时才带上更新后的数据
func (h *Handler) errorResult(err error, updated any) (ginx.Result, error) {
	var ce *domain.ConfirmationError
	switch {
	case errors.As(err, &ce):
		return ginx.Result{
			Code: errs.ConfirmationRequired.Code,
			Msg:  errs.ConfirmationRequired.Msg,
			Data: ce.Affected,
		}, nil
	case errors.Is(err, domain.ErrValidation):
		return ginx.Result{Code: errs.ValidationError.Code, Msg: err.Error()}, nil
	case errors.Is(err, domain.ErrNotFound):
		return ginx.Result{Code: errs.NotFoundError.Code, Msg: errs.NotFoundError.Msg}, nil
	case errors.Is(err, domain.ErrInvalidState):
		return ginx.Result{Code: errs.InvalidStateError.Code, Msg: errs.InvalidStateError.Msg}, nil
	case errors.Is(err, service.ErrLedgerUnavailable):
		h.logger.Error("账本尚未加载，拒绝修改", elog.FieldErr(err))
		return ginx.Result{Code: errs.PersistenceError.Code, Msg: errs.PersistenceError.Msg}, nil
	case errors.Is(err, service.ErrPersistence):
		h.logger.Error("账本保存失败", elog.FieldErr(err))
		return ginx.Result{
			Code: errs.PersistenceError.Code,
			Msg:  errs.PersistenceError.Msg,
			Data: updated,
		}, nil
	default:
		return systemErrorResult, err
	}
}
