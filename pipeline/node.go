package pipeline

import (
	"context"

	"github.com/meikit/meikit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindSignal    Kind = "signal"    // 信号阶段：生成各路候选
	KindAggregate Kind = "aggregate" // 聚合阶段：归一化并合并为单一排序
	KindFilter    Kind = "filter"    // 过滤阶段：剔除不符合约束的候选
	KindReRank    Kind = "rerank"    // 重排阶段：多样性惩罚/截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便聚合、过滤、重排等操作串联。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(config map[string]interface{}) (Node, error)
