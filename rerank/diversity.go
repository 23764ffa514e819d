package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pipeline"
)

// Diversity 是贪心多样性重排节点：逐个选出当前有效分最高的候选，
// 已选集合中品牌或类目相同的候选按 (1-Weight)^k 衰减，k 为重合次数。
// 衰减后的有效分会回写到 Item.Score，下游的分数过滤和响应排序看到的是同一份分数。
//
// Weight = 0 时退化为按原分数排序（无衰减）；Weight 越大同质候选沉得越快。
// 品牌与类目取自 meta["brand"] / meta["category"]。
type Diversity struct {
	// Weight 多样性强度，取值 [0,1)
	Weight float64
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) <= 1 || n.Weight <= 0 {
		return items, nil
	}
	w := n.Weight
	if w >= 1 {
		w = 0.999
	}

	remaining := make([]*core.Item, len(items))
	copy(remaining, items)
	sortByScore(remaining)

	brandCount := make(map[string]int)
	categoryCount := make(map[string]int)
	out := make([]*core.Item, 0, len(items))

	for len(remaining) > 0 {
		bestIdx, bestScore := -1, math.Inf(-1)
		for i, it := range remaining {
			k := 0
			if b := it.MetaString("brand"); b != "" {
				k += brandCount[b]
			}
			if c := it.MetaString("category"); c != "" {
				k += categoryCount[c]
			}
			eff := it.Score * math.Pow(1-w, float64(k))
			if eff > bestScore || (eff == bestScore && bestIdx >= 0 && it.ID < remaining[bestIdx].ID) {
				bestIdx, bestScore = i, eff
			}
		}
		pick := remaining[bestIdx]
		pick.Score = bestScore
		if b := pick.MetaString("brand"); b != "" {
			brandCount[b]++
		}
		if c := pick.MetaString("category"); c != "" {
			categoryCount[c]++
		}
		out = append(out, pick)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out, nil
}

// 排序稳定性兜底：入参乱序时先按分数整理，贪心结果才可复现
func sortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}
