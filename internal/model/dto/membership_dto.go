package dto

// CreateMembershipRequest 创建会员套餐请求（馆员）
type CreateMembershipRequest struct {
	Name                 string  `json:"name" binding:"required"`
	PricePerMonth        float64 `json:"price_per_month" binding:"required,gt=0"`
	BookAccessPercentage int     `json:"book_access_percentage" binding:"min=0,max=100"`
}

// UpdateMembershipRequest 更新会员套餐请求
type UpdateMembershipRequest struct {
	PricePerMonth        *float64 `json:"price_per_month,omitempty" binding:"omitempty,gt=0"`
	BookAccessPercentage *int     `json:"book_access_percentage,omitempty" binding:"omitempty,min=0,max=100"`
}

// MembershipPlan 会员套餐项
type MembershipPlan struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	PricePerMonth        float64 `json:"price_per_month"`
	BookAccessPercentage int     `json:"book_access_percentage"`
}

// SubscribeRequest 订阅会员请求
type SubscribeRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// MembershipInfo 用户当前会员信息
type MembershipInfo struct {
	Plan                 string  `json:"plan"`
	BookAccessPercentage int     `json:"book_access_percentage"`
	PricePerMonth        float64 `json:"price_per_month"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	Status               string  `json:"status"`
	RemainingDays        int     `json:"remaining_days"`
	PaymentID            *int64  `json:"payment_id,omitempty"`
}
