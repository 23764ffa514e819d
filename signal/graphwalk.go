package signal

import (
	"context"
	"math/rand"
	"sort"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/utils"
)

// GraphWalk 是基于知识图谱随机游走的关联信号。
//
// 图谱节点：产品、品牌、成分、功效；边为双向关联。
// 从每个历史产品节点出发做 NumWalks 次、每次最多 WalkLength 步的随机游走，
// 途经的非历史产品节点按 1/(step+1) 累计访问权重（越近关联越强），
// 最终按历史长度归一化得到候选分数。
type GraphWalk struct {
	Graph core.GraphStore

	// WalkLength 单次游走最大步数，默认 10
	WalkLength int

	// NumWalks 每个起点的游走次数，默认 50
	NumWalks int

	// Seed 随机源种子。0 表示使用固定默认种子，保证同输入同输出。
	Seed int64

	// TopK 返回的候选数上限，默认 50
	TopK int
}

func (p *GraphWalk) Kind() core.SignalKind { return core.SignalGraphWalk }
func (p *GraphWalk) Name() string          { return "signal.graphwalk" }

func (p *GraphWalk) Collect(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if p.Graph == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	if len(rctx.History) == 0 {
		return nil, nil
	}

	walkLength := p.WalkLength
	if walkLength <= 0 {
		walkLength = 10
	}
	numWalks := p.NumWalks
	if numWalks <= 0 {
		numWalks = 50
	}

	seed := p.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	interacted := rctx.HistorySet()

	// 起点按产品 ID 排序，保证游走序列确定
	starts := make([]string, 0, len(interacted))
	for id := range interacted {
		starts = append(starts, id)
	}
	sort.Strings(starts)

	visits := make(map[string]float64)
	for _, start := range starts {
		node := core.ProductNode(start)
		for w := 0; w < numWalks; w++ {
			cur := node
			for step := 0; step < walkLength; step++ {
				neighbors, err := p.Graph.WalkNeighbors(ctx, cur)
				if err != nil {
					return nil, err
				}
				if len(neighbors) == 0 {
					break
				}
				cur = neighbors[rng.Intn(len(neighbors))]
				pid, ok := core.ProductIDFromNode(cur)
				if !ok {
					continue
				}
				if _, seen := interacted[pid]; seen {
					continue
				}
				visits[pid] += 1.0 / float64(step+1)
			}
		}
	}
	if len(visits) == 0 {
		return nil, nil
	}

	// 按历史长度归一化，历史越长单点贡献越稀释
	norm := float64(len(starts) * numWalks)
	type scoredItem struct {
		productID string
		score     float64
	}
	scores := make([]scoredItem, 0, len(visits))
	for id, v := range visits {
		scores = append(scores, scoredItem{productID: id, score: v / norm})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].productID < scores[j].productID
	})

	topK := p.TopK
	if topK <= 0 {
		topK = 50
	}
	if len(scores) > topK {
		scores = scores[:topK]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		it := core.NewItem(s.productID)
		it.Score = s.score
		it.PutLabel("signal_source", utils.Label{Value: string(p.Kind()), Source: "signal"})
		out = append(out, it)
	}
	return out, nil
}
