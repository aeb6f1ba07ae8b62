package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/internal/api/middleware"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Rent 租借图书
// POST /api/v1/books/:id/rent
func (h *TransactionHandler) Rent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.transactionService.Rent(userID, bookID, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "租借成功", item)
}

// Purchase 购买图书
// POST /api/v1/books/:id/purchase
func (h *TransactionHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.transactionService.Purchase(userID, bookID, req.PaymentMethod, req.DeliveryAddress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			response.ParamError(c, err.Error())
		case errors.Is(err, repository.ErrOutOfStock):
			response.OutOfStockError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "购买成功", item)
}

// Issue 借出图书给学生
// POST /api/v1/issued-books
func (h *TransactionHandler) Issue(c *gin.Context) {
	var req dto.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.transactionService.Issue(req.BookID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotStudent):
			response.ParamError(c, err.Error())
		case errors.Is(err, repository.ErrOutOfStock):
			response.OutOfStockError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "借出成功", item)
}

// Return 归还图书
// POST /api/v1/issued-books/:id/return
func (h *TransactionHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.transactionService.Return(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, repository.ErrAlreadyReturned):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "归还成功", item)
}

// ListIssued 借出记录，馆员看全部，学生看自己的
// GET /api/v1/issued-books
func (h *TransactionHandler) ListIssued(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.transactionService.ListIssued(userID, middleware.GetRole(c) == model.RoleLibrarian)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListRents 我的租借记录
// GET /api/v1/rents
func (h *TransactionHandler) ListRents(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.transactionService.ListRents(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListPurchases 我的购买记录
// GET /api/v1/purchases
func (h *TransactionHandler) ListPurchases(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.transactionService.ListPurchases(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListPayments 支付流水，馆员看全部台账，学生看自己的
// GET /api/v1/payments
func (h *TransactionHandler) ListPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := parsePagination(c)

	items, total, err := h.transactionService.ListPayments(
		userID, middleware.GetRole(c) == model.RoleLibrarian, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
