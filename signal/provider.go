package signal

import (
	"context"

	"github.com/meikit/meikit/core"
)

// Provider 表示一路可复用的推荐信号（协同过滤/内容相似/知识图谱游走）。
// 你可以把它理解为"可并发 fan-out 的证据源"：每路独立产出带分数的候选，
// 分数量纲由各路自定义，跨路比较在聚合阶段做归一化后进行。
type Provider interface {
	// Kind 返回信号种类，对应请求的 algorithm 选项
	Kind() core.SignalKind

	Name() string

	// Collect 针对一次请求产出候选序列。
	// 约定：无历史/模型未覆盖等冷启动情形返回 (nil, nil) 而非错误；
	// 错误只用于外部依赖故障，由 Fanout 按单路失败隔离。
	Collect(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
