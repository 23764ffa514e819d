package signal

import (
	"context"
	"sort"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/utils"
)

// Collaborative 是基于矩阵分解的协同过滤信号。
//
// 核心思想：离线训练把用户-产品交互矩阵分解为隐向量，
// 在线预测亲和度 = 用户隐向量 · 产品隐向量。
//
// 工程特征：
//   - 实时性：好（离线训练，在线查表 + 点积）
//   - 冷启动：无历史用户直接返回空序列（不是错误），由聚合端优雅处理
//   - 训练/刷新完全在请求路径之外（批任务），请求内只读
type Collaborative struct {
	Model core.FactorModel

	// TopK 返回的候选数上限，默认 50
	TopK int
}

func (p *Collaborative) Kind() core.SignalKind { return core.SignalCollaborative }
func (p *Collaborative) Name() string          { return "signal.collaborative" }

func (p *Collaborative) Collect(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if p.Model == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	// 冷启动：没有任何交互历史，产出空序列
	if len(rctx.History) == 0 {
		return nil, nil
	}

	userVector, err := p.Model.UserVector(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(userVector) == 0 {
		// 模型尚未覆盖该用户（训练滞后于新交互），同样按冷启动处理
		return nil, nil
	}

	itemVectors, err := p.Model.AllItemVectors(ctx)
	if err != nil {
		return nil, err
	}

	interacted := rctx.HistorySet()

	type scoredItem struct {
		productID string
		score     float64
	}
	scores := make([]scoredItem, 0, len(itemVectors))
	for productID, itemVector := range itemVectors {
		if _, ok := interacted[productID]; ok {
			continue
		}
		scores = append(scores, scoredItem{
			productID: productID,
			score:     dotProduct(userVector, itemVector),
		})
	}

	// 分数降序；同分按产品 ID 升序，保证确定性
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

// dotProduct 计算两个向量的点积
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
