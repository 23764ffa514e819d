package aggregate

import (
	"sort"
	"strings"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/utils"
	"github.com/meikit/meikit/signal"
)

// 各信号的推荐理由文案
var kindReasons = map[core.SignalKind]string{
	core.SignalCollaborative: "基于相似用户的购买行为",
	core.SignalContent:       "基于用户偏好与产品特征匹配",
	core.SignalGraphWalk:     "基于知识图谱的产品关联分析",
}

// contribution 记录某个信号对某个产品的归一化贡献。
type contribution struct {
	kind   core.SignalKind
	norm   float64
	weight float64
}

// Combine 将多路信号的结果融合为单一候选列表。
//
// 融合规则：
//  1. 逐信号做 min-max 归一化到 [0,1]（单元素组归一为 1.0）
//  2. 权重取 cfg.SignalWeights，缺省各信号等权，并在可用信号上归一化
//  3. 产品融合分 = Σ 权重 × 归一化分，落在 [0,1]
//  4. 置信度 = 命中信号占比 × (0.5 + 0.5 × 命中信号归一化均分)
//  5. 理由按贡献度（权重×归一化分）降序拼接，主导信号在前
//
// 出错的信号（Outcome.Err 非空）不参与可用信号计数。
// 排序：融合分降序、置信度降序、产品 ID 升序。
func Combine(outcomes []signal.Outcome, cfg *core.RecommendConfig) []*core.Item {
	// 可用信号：执行未出错的信号，空结果也算可用
	usable := make([]core.SignalKind, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			usable = append(usable, o.Kind)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	weights := normalizeWeights(usable, cfg)

	// 逐信号归一化并按产品聚合贡献
	contribs := make(map[string][]contribution)
	labels := make(map[string]map[string]utils.Label)
	for _, o := range outcomes {
		if o.Err != nil || len(o.Items) == 0 {
			continue
		}
		normed := minMaxNormalize(o.Items)
		w := weights[o.Kind]
		for id, n := range normed {
			contribs[id] = append(contribs[id], contribution{kind: o.Kind, norm: n, weight: w})
		}
		for _, it := range o.Items {
			if len(it.Labels) == 0 {
				continue
			}
			if labels[it.ID] == nil {
				labels[it.ID] = make(map[string]utils.Label)
			}
			for k, l := range it.Labels {
				if old, ok := labels[it.ID][k]; ok {
					labels[it.ID][k] = utils.MergeLabel(old, l)
				} else {
					labels[it.ID][k] = l
				}
			}
		}
	}

	out := make([]*core.Item, 0, len(contribs))
	for id, cs := range contribs {
		var score, normSum float64
		for _, c := range cs {
			score += c.weight * c.norm
			normSum += c.norm
		}
		hitRatio := float64(len(cs)) / float64(len(usable))
		confidence := hitRatio * (0.5 + 0.5*normSum/float64(len(cs)))

		// 主导信号在前：贡献度降序，同贡献按信号名升序
		sort.Slice(cs, func(i, j int) bool {
			ci, cj := cs[i].weight*cs[i].norm, cs[j].weight*cs[j].norm
			if ci != cj {
				return ci > cj
			}
			return cs[i].kind < cs[j].kind
		})
		reasons := make([]string, 0, len(cs))
		for _, c := range cs {
			if r, ok := kindReasons[c.kind]; ok {
				reasons = append(reasons, r)
			}
		}

		it := core.NewItem(id)
		it.Score = score
		it.PutMeta("reason", strings.Join(reasons, "；"))
		it.PutMeta("confidence", confidence)
		for k, l := range labels[id] {
			it.PutLabel(k, l)
		}
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ci, cj := out[i].MetaFloat("confidence"), out[j].MetaFloat("confidence")
		if ci != cj {
			return ci > cj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// normalizeWeights 在可用信号集合上归一化权重。
// 单个信号的原始权重由 cfg.Weight 给出（未配置的信号取等权兜底），再按总和归一。
func normalizeWeights(usable []core.SignalKind, cfg *core.RecommendConfig) map[core.SignalKind]float64 {
	weights := make(map[core.SignalKind]float64, len(usable))
	equal := 1.0 / float64(len(usable))
	var total float64
	for _, k := range usable {
		w := equal
		if cfg != nil {
			w = cfg.Weight(k, len(usable))
		}
		weights[k] = w
		total += w
	}
	for k, w := range weights {
		weights[k] = w / total
	}
	return weights
}

// minMaxNormalize 把一组候选分数线性映射到 [0,1]。
// 全部同分（含单元素组）时统一归一为 1.0。
func minMaxNormalize(items []*core.Item) map[string]float64 {
	min, max := items[0].Score, items[0].Score
	for _, it := range items[1:] {
		if it.Score < min {
			min = it.Score
		}
		if it.Score > max {
			max = it.Score
		}
	}
	normed := make(map[string]float64, len(items))
	for _, it := range items {
		var n float64
		if max == min {
			n = 1.0
		} else {
			n = (it.Score - min) / (max - min)
		}
		// 同一信号重复给出同一产品时取较大归一化分
		if old, ok := normed[it.ID]; !ok || n > old {
			normed[it.ID] = n
		}
	}
	return normed
}
