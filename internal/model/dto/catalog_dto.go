package dto

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Biography   string `json:"biography"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD，可空
	DateOfDeath string `json:"date_of_death"` // YYYY-MM-DD，可空
}

// UpdateAuthorRequest 更新作者请求
type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Biography   *string `json:"biography,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	DateOfDeath *string `json:"date_of_death,omitempty"`
}

// AuthorItem 作者项
type AuthorItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Biography   string `json:"biography,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	DateOfDeath string `json:"date_of_death,omitempty"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// CategoryItem 分类项
type CategoryItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LanguageItem 语言项
type LanguageItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
