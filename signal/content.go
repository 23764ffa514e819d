package signal

import (
	"context"
	"math"
	"sort"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/utils"
)

// Content 是基于内容的相似信号。
//
// 核心思想："用户喜欢具有某些特征的产品，推荐具有相似特征的其他产品"。
//
// 算法流程：
//  1. 历史产品 → 特征向量（成分集合、功效集合、类目、归一化价格）
//  2. 用户画像向量 = 历史向量的交互强度加权平均
//  3. 余弦相似度 ≥ Threshold 的未交互产品入选
//  4. 相似度降序；同分按评分降序、产品 ID 升序（确定性可测试）
type Content struct {
	Store core.ProductStore

	// Threshold 余弦相似度阈值，默认 0.7
	Threshold float64

	// TopK 返回的候选数上限，默认 50
	TopK int
}

func (p *Content) Kind() core.SignalKind { return core.SignalContent }
func (p *Content) Name() string          { return "signal.content" }

func (p *Content) Collect(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if p.Store == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	if len(rctx.History) == 0 {
		return nil, nil
	}

	ids, err := p.Store.ListProductIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// 一次性加载目录：价格归一化需要全局最大价格
	products := make(map[string]*core.Product, len(ids))
	maxPrice := 0.0
	for _, id := range ids {
		prod, err := p.Store.GetProduct(ctx, id)
		if err != nil {
			// 脏 ID（目录与特征不同步），跳过该候选
			continue
		}
		products[id] = prod
		if prod.Price > maxPrice {
			maxPrice = prod.Price
		}
	}

	profile := p.profileVector(rctx.History, products, maxPrice)
	if len(profile) == 0 {
		return nil, nil
	}

	threshold := p.Threshold
	if threshold <= 0 {
		threshold = 0.7
	}

	interacted := rctx.HistorySet()

	type scoredItem struct {
		productID string
		score     float64
		rating    float64
	}
	scores := make([]scoredItem, 0)
	for _, id := range ids {
		if _, ok := interacted[id]; ok {
			continue // 已交互产品绝不重复推荐
		}
		prod, ok := products[id]
		if !ok {
			continue
		}
		sim := CosineSimilarity(profile, ProductVector(prod, maxPrice))
		if sim >= threshold {
			scores = append(scores, scoredItem{productID: id, score: sim, rating: prod.Rating})
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		if scores[i].rating != scores[j].rating {
			return scores[i].rating > scores[j].rating
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

// profileVector 计算用户画像向量：历史产品特征向量按交互强度加权平均。
func (p *Content) profileVector(
	history []core.Interaction,
	products map[string]*core.Product,
	maxPrice float64,
) map[string]float64 {
	profile := make(map[string]float64)
	var total float64
	for _, inter := range history {
		prod, ok := products[inter.ProductID]
		if !ok {
			continue
		}
		strength := inter.Strength
		if strength <= 0 {
			strength = 1
		}
		for k, v := range ProductVector(prod, maxPrice) {
			profile[k] += strength * v
		}
		total += strength
	}
	if total == 0 {
		return nil
	}
	for k := range profile {
		profile[k] /= total
	}
	return profile
}

// ProductVector 构建产品的内容特征向量：
// 成分/功效/类目为 one-hot 维度，价格按目录最大价格归一化为单一维度。
func ProductVector(p *core.Product, maxPrice float64) map[string]float64 {
	vec := make(map[string]float64, len(p.Ingredients)+len(p.Effects)+2)
	for _, ing := range p.Ingredients {
		vec["ingredient:"+ing] = 1
	}
	for _, eff := range p.Effects {
		vec["effect:"+eff] = 1
	}
	if p.Category != "" {
		vec["category:"+p.Category] = 1
	}
	if maxPrice > 0 && p.Price > 0 {
		vec["price"] = p.Price / maxPrice
	}
	return vec
}

// CosineSimilarity 计算两个稀疏特征向量的余弦相似度。
func CosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
