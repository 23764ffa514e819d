package pipeline

import (
	"context"

	"github.com/meikit/meikit/core"
)

// Pipeline 把候选后置处理拆成可组合的 Node 链：聚合 → 重排 → 过滤 → 截断。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
