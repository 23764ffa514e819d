package core

import "time"

// UserProfile 是用户的声明属性画像：肤质、肤况困扰、预算区间。
// 交互历史不放在画像里（见 RecommendContext.History）；画像缺失不是错误，
// 只是少一路可用的过滤/调权信号。
type UserProfile struct {
	UserID string

	// SkinType 肤质：dry / oily / combination / sensitive / normal
	SkinType string

	// SkinConcerns 肤况困扰：干燥、出油、暗沉、细纹、痘痘等
	SkinConcerns []string

	// 预算区间；两者均为 0 表示未声明
	BudgetMin float64
	BudgetMax float64

	// Interests 类目兴趣权重（0-1），由外部画像链路回写
	Interests map[string]float64

	// UpdateTime 最后更新时间
	UpdateTime time.Time
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		Interests: make(map[string]float64),
	}
}

// HasBudget 判断用户是否声明了预算区间。
func (p *UserProfile) HasBudget() bool {
	return p != nil && (p.BudgetMin > 0 || p.BudgetMax > 0)
}

// InBudget 判断价格是否落在用户预算内；未声明预算视为不限。
func (p *UserProfile) InBudget(price float64) bool {
	if !p.HasBudget() {
		return true
	}
	if p.BudgetMin > 0 && price < p.BudgetMin {
		return false
	}
	if p.BudgetMax > 0 && price > p.BudgetMax {
		return false
	}
	return true
}
