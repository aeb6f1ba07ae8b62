package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/internal/api/middleware"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

type BookHandler struct {
	bookService   *service.BookService
	accessService *service.AccessService
}

func NewBookHandler(bookService *service.BookService, accessService *service.AccessService) *BookHandler {
	return &BookHandler{
		bookService:   bookService,
		accessService: accessService,
	}
}

// parsePagination 解析分页参数，默认第 1 页每页 20 条
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return page, pageSize
}

// Create 上架图书
// POST /api/v1/books
func (h *BookHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.bookService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookExists):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrAuthorNotFound),
			errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrLanguageNotFound):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Update 编辑图书
// PUT /api/v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.bookService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrBookExists):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrAuthorNotFound),
			errors.Is(err, service.ErrCategoryNotFound):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// Delete 下架图书
// DELETE /api/v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.bookService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Get 图书详情
// GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.bookService.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// List 全量目录分页
// GET /api/v1/books
func (h *BookHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	items, total, err := h.bookService.List(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Available 学生视角的目录划分：会员免费区 + 需租借区
// GET /api/v1/books/available
func (h *BookHandler) Available(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	resp, err := h.accessService.GetAvailableBooks(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}
