package core

import "github.com/meikit/meikit/pkg/utils"

// Item 是推荐链路中的统一承载结构：一个候选产品及其分数、特征、元信息与标签。
// 信号提供方产出的候选、聚合后的结果都以 Item 流转；Labels 用于解释与策略驱动，
// Score 用于排序决策。
type Item struct {
	ID       string // 产品 ID
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 读取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}

// PutMeta 写入元信息（品牌、类目、价格等，供重排与过滤使用）。
func (it *Item) PutMeta(key string, v any) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta[key] = v
}

// MetaString 读取字符串类型的元信息，不存在或类型不符返回 ""。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	s, _ := it.Meta[key].(string)
	return s
}

// MetaFloat 读取数值类型的元信息，不存在或类型不符返回 0。
func (it *Item) MetaFloat(key string) float64 {
	if it.Meta == nil {
		return 0
	}
	f, _ := it.Meta[key].(float64)
	return f
}
