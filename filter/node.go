package filter

import (
	"context"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pipeline"
	"github.com/meikit/meikit/pkg/utils"
)

// Node 是过滤节点，组合多个过滤器。任一过滤器命中即剔除该候选。
// 单个过滤器出错时跳过该过滤器，不中断整条流水线。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.node"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		drop := false
		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				reason = f.Name()
				break
			}
		}

		if drop {
			item.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: reason,
			})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
