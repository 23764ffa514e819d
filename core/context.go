package core

import "github.com/meikit/meikit/pkg/utils"

// RecommendContext 承载一次推荐请求的用户信息，贯穿各信号提供方与后置处理透传。
// 请求之间无共享可变状态：每次请求构造一个新的 RecommendContext。
type RecommendContext struct {
	UserID string

	// History 是用户交互历史的请求内快照，由 Service 在入口处加载一次，
	// 各信号提供方只读，不再各自回源。
	History []Interaction

	// User 是用户声明属性（肤质、预算等），可能为空（未登记画像）。
	User *UserProfile

	// Labels 是用户级标签，可驱动过滤/重排策略。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（调试开关、场景标识等）。
	Params map[string]any
}

// HistorySet 返回交互历史的产品 ID 集合，用于各信号的已购排除。
func (rctx *RecommendContext) HistorySet() map[string]struct{} {
	set := make(map[string]struct{}, len(rctx.History))
	for _, inter := range rctx.History {
		set[inter.ProductID] = struct{}{}
	}
	return set
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
