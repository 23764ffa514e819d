package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/meikit/meikit/core"
)

// GraphAdapter 把 core.Store 适配为知识图谱的邻接访问。
// key 约定：
//
//	邻接表：{KeyPrefix}:adj:{nodeID} → JSON []string
//
// 节点 ID 带类型前缀（core.ProductNode 等）；边是无向的：索引产品时同时写入
// 产品→成分 与 成分→产品 两个方向，游走才能经由成分/品牌/功效桥接到其他产品。
type GraphAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "graph"
	KeyPrefix string
}

func NewGraphAdapter(s core.Store, keyPrefix string) *GraphAdapter {
	if keyPrefix == "" {
		keyPrefix = "graph"
	}
	return &GraphAdapter{store: s, KeyPrefix: keyPrefix}
}

// WalkNeighbors 返回节点的邻居（升序）；孤立节点返回空切片而非错误。
func (a *GraphAdapter) WalkNeighbors(ctx context.Context, nodeID string) ([]string, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":adj:"+nodeID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var neighbors []string
	if err := json.Unmarshal(data, &neighbors); err != nil {
		return nil, err
	}
	sort.Strings(neighbors)
	return neighbors, nil
}

// IndexProduct 把产品的成分/品牌/功效边写入邻接表（数据准备/测试用）。
func (a *GraphAdapter) IndexProduct(ctx context.Context, p *core.Product) error {
	productNode := core.ProductNode(p.ID)

	neighbors := make([]string, 0, len(p.Ingredients)+len(p.Effects)+1)
	if p.BrandID != "" {
		neighbors = append(neighbors, core.BrandNode(p.BrandID))
	}
	for _, ing := range p.Ingredients {
		neighbors = append(neighbors, core.IngredientNode(ing))
	}
	for _, eff := range p.Effects {
		neighbors = append(neighbors, core.EffectNode(eff))
	}

	if err := a.addEdges(ctx, productNode, neighbors); err != nil {
		return err
	}
	// 反向边：成分/品牌/功效 → 产品
	for _, n := range neighbors {
		if err := a.addEdges(ctx, n, []string{productNode}); err != nil {
			return err
		}
	}
	return nil
}

func (a *GraphAdapter) addEdges(ctx context.Context, nodeID string, add []string) error {
	existing, err := a.WalkNeighbors(ctx, nodeID)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(existing)+len(add))
	merged := make([]string, 0, len(existing)+len(add))
	for _, n := range existing {
		seen[n] = struct{}{}
		merged = append(merged, n)
	}
	for _, n := range add {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		merged = append(merged, n)
	}
	sort.Strings(merged)

	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":adj:"+nodeID, data)
}

var _ core.GraphStore = (*GraphAdapter)(nil)
