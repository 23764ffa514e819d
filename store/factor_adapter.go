package store

import (
	"context"
	"encoding/json"

	"github.com/meikit/meikit/core"
)

// FactorAdapter 把 core.Store 适配为隐因子模型的只读视图。
// 离线训练任务把向量整体写入，在线请求只查表。
// key 约定：
//
//	用户向量：{KeyPrefix}:user:{userID} → JSON []float64
//	产品向量：{KeyPrefix}:items         → JSON map[string][]float64
type FactorAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "mf"
	KeyPrefix string
}

func NewFactorAdapter(s core.Store, keyPrefix string) *FactorAdapter {
	if keyPrefix == "" {
		keyPrefix = "mf"
	}
	return &FactorAdapter{store: s, KeyPrefix: keyPrefix}
}

// UserVector 返回用户隐向量；模型未覆盖该用户返回 (nil, nil)（冷启动语义）。
func (a *FactorAdapter) UserVector(ctx context.Context, userID string) ([]float64, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":user:"+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// AllItemVectors 返回全部产品隐向量；模型未就绪返回空 map。
func (a *FactorAdapter) AllItemVectors(ctx context.Context) (map[string][]float64, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":items")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return map[string][]float64{}, nil
		}
		return nil, err
	}

	var vecs map[string][]float64
	if err := json.Unmarshal(data, &vecs); err != nil {
		return nil, err
	}
	return vecs, nil
}

// SaveUserVectors 整体写入用户向量（离线训练任务用）。
func (a *FactorAdapter) SaveUserVectors(ctx context.Context, vecs map[string][]float64) error {
	for userID, vec := range vecs {
		data, err := json.Marshal(vec)
		if err != nil {
			return err
		}
		if err := a.store.Set(ctx, a.KeyPrefix+":user:"+userID, data); err != nil {
			return err
		}
	}
	return nil
}

// SaveItemVectors 整体写入产品向量（离线训练任务用）。
func (a *FactorAdapter) SaveItemVectors(ctx context.Context, vecs map[string][]float64) error {
	data, err := json.Marshal(vecs)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":items", data)
}

var _ core.FactorModel = (*FactorAdapter)(nil)
