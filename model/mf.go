package model

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/meikit/meikit/core"
)

// MF 实现了隐因子矩阵分解（Matrix Factorization）模型。
//
// 核心思想：把用户-产品交互矩阵分解为用户隐向量和产品隐向量，
// 预测亲和度 = 用户隐向量 · 产品隐向量。
//
// 工程定位：
//   - 训练在离线批任务中进行（Fit），训练轮数/因子数来自配置
//   - 在线请求只消费训练产物（UserVector / AllItemVectors），无锁只读
//   - Seed 固定时训练结果可复现，便于测试与回归
type MF struct {
	Factors      int     // 隐因子数（n_factors）
	Epochs       int     // 训练轮数（n_epochs）
	LearningRate float64 // SGD 学习率，默认 0.05
	Reg          float64 // L2 正则系数，默认 0.02
	Seed         int64   // 随机初始化种子

	userVecs map[string][]float64
	itemVecs map[string][]float64
}

// Fit 用 SGD 训练隐向量。interactions: userID → productID → 交互强度。
// 遍历顺序按 ID 排序，保证同一种子下训练完全确定。
func (m *MF) Fit(interactions map[string]map[string]float64) {
	factors := m.Factors
	if factors <= 0 {
		factors = 16
	}
	epochs := m.Epochs
	if epochs <= 0 {
		epochs = 20
	}
	lr := m.LearningRate
	if lr <= 0 {
		lr = 0.05
	}
	reg := m.Reg
	if reg <= 0 {
		reg = 0.02
	}

	rng := rand.New(rand.NewSource(m.Seed))

	userIDs := make([]string, 0, len(interactions))
	itemSet := make(map[string]struct{})
	for userID, items := range interactions {
		userIDs = append(userIDs, userID)
		for itemID := range items {
			itemSet[itemID] = struct{}{}
		}
	}
	sort.Strings(userIDs)
	itemIDs := make([]string, 0, len(itemSet))
	for itemID := range itemSet {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Strings(itemIDs)

	m.userVecs = make(map[string][]float64, len(userIDs))
	m.itemVecs = make(map[string][]float64, len(itemIDs))
	for _, userID := range userIDs {
		m.userVecs[userID] = randomVector(rng, factors)
	}
	for _, itemID := range itemIDs {
		m.itemVecs[itemID] = randomVector(rng, factors)
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for _, userID := range userIDs {
			items := interactions[userID]
			sortedItems := make([]string, 0, len(items))
			for itemID := range items {
				sortedItems = append(sortedItems, itemID)
			}
			sort.Strings(sortedItems)

			uv := m.userVecs[userID]
			for _, itemID := range sortedItems {
				iv := m.itemVecs[itemID]
				pred := dot(uv, iv)
				err := items[itemID] - pred
				for f := 0; f < factors; f++ {
					du := lr * (err*iv[f] - reg*uv[f])
					di := lr * (err*uv[f] - reg*iv[f])
					uv[f] += du
					iv[f] += di
				}
			}
		}
	}
}

// Predict 返回用户对产品的预测亲和度；任一向量缺失返回 0。
func (m *MF) Predict(userID, productID string) float64 {
	uv, ok := m.userVecs[userID]
	if !ok {
		return 0
	}
	iv, ok := m.itemVecs[productID]
	if !ok {
		return 0
	}
	return dot(uv, iv)
}

// UserVector 实现 core.FactorModel；未覆盖的用户返回 (nil, nil)。
func (m *MF) UserVector(_ context.Context, userID string) ([]float64, error) {
	vec, ok := m.userVecs[userID]
	if !ok {
		return nil, nil
	}
	out := make([]float64, len(vec))
	copy(out, vec)
	return out, nil
}

// AllItemVectors 实现 core.FactorModel。
func (m *MF) AllItemVectors(_ context.Context) (map[string][]float64, error) {
	out := make(map[string][]float64, len(m.itemVecs))
	for id, vec := range m.itemVecs {
		c := make([]float64, len(vec))
		copy(c, vec)
		out[id] = c
	}
	return out, nil
}

var _ core.FactorModel = (*MF)(nil)

// randomVector 生成小幅随机初始化向量，均值 0。
func randomVector(rng *rand.Rand, n int) []float64 {
	vec := make([]float64, n)
	scale := 1.0 / math.Sqrt(float64(n))
	for i := range vec {
		vec[i] = (rng.Float64() - 0.5) * scale
	}
	return vec
}

func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
