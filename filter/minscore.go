package filter

import (
	"context"

	"github.com/meikit/meikit/core"
)

// MinScore 是分数下限过滤器：融合分低于阈值的候选一律剔除。
// Threshold <= 0 时不过滤。
type MinScore struct {
	Threshold float64
}

func (f *MinScore) Name() string {
	return "filter.min_score"
}

func (f *MinScore) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Threshold <= 0 {
		return false, nil
	}
	return item.Score < f.Threshold, nil
}
