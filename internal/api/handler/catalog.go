package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/response"
	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// parseIDParam 解析路径中的 :id
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "无效的 ID")
		return 0, false
	}
	return id, true
}

// CreateAuthor 新增作者
// POST /api/v1/authors
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.CreateAuthor(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// UpdateAuthor 编辑作者
// PUT /api/v1/authors/:id
func (h *CatalogHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.UpdateAuthor(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidDate):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// DeleteAuthor 删除作者
// DELETE /api/v1/authors/:id
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteAuthor(id); err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAuthorHasBooks):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// GetAuthor 作者详情
// GET /api/v1/authors/:id
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.catalogService.GetAuthor(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// ListAuthors 作者列表
// GET /api/v1/authors
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	items, err := h.catalogService.ListAuthors()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// CreateCategory 新增分类
// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// UpdateCategory 编辑分类
// PUT /api/v1/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrCategoryExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, item)
}

// DeleteCategory 删除分类
// DELETE /api/v1/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// ListCategories 分类列表
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	items, err := h.catalogService.ListCategories()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListLanguages 语言列表
// GET /api/v1/languages
func (h *CatalogHandler) ListLanguages(c *gin.Context) {
	items, err := h.catalogService.ListLanguages()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}
