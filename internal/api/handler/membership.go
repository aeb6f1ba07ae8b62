package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/internal/api/middleware"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// CreatePlan 新建会员套餐
// POST /api/v1/memberships
func (h *MembershipHandler) CreatePlan(c *gin.Context) {
	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.membershipService.CreatePlan(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNameInvalid):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrMembershipNameExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, plan)
}

// UpdatePlan 编辑会员套餐
// PUT /api/v1/memberships/:id
func (h *MembershipHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.membershipService.UpdatePlan(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrMembershipInUse):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, plan)
}

// DeletePlan 删除会员套餐
// DELETE /api/v1/memberships/:id
func (h *MembershipHandler) DeletePlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.membershipService.DeletePlan(id); err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrMembershipInUse):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// ListPlans 套餐列表，公开可见
// GET /api/v1/memberships
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	plans, err := h.membershipService.ListPlans()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, plans)
}

// Subscribe 订阅会员
// POST /api/v1/memberships/:id/subscribe
func (h *MembershipHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.membershipService.Subscribe(userID, id, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "订阅成功", info)
}

// Current 当前会员信息
// GET /api/v1/memberships/current
func (h *MembershipHandler) Current(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.membershipService.GetCurrent(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoMembership):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}
