package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/meikit/meikit/core"
)

// CatalogAdapter 把 core.Store 适配为产品目录的领域接口。
// key 约定：
//
//	产品特征：{KeyPrefix}:product:{productID} → JSON core.Product
//	产品全集：{KeyPrefix}:products           → JSON []string
type CatalogAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "catalog"
	KeyPrefix string
}

func NewCatalogAdapter(s core.Store, keyPrefix string) *CatalogAdapter {
	if keyPrefix == "" {
		keyPrefix = "catalog"
	}
	return &CatalogAdapter{store: s, KeyPrefix: keyPrefix}
}

// GetProduct 解析产品特征；产品不存在返回 NOT_FOUND（调用方按脏候选降级处理）。
func (a *CatalogAdapter) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	key := a.KeyPrefix + ":product:" + productID
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProductIDs 返回产品全集（升序，保证遍历顺序确定）。
func (a *CatalogAdapter) ListProductIDs(ctx context.Context) ([]string, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":products")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// PutProduct 写入产品并维护全集列表（数据准备/测试用）。
func (a *CatalogAdapter) PutProduct(ctx context.Context, p *core.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.KeyPrefix+":product:"+p.ID, data); err != nil {
		return err
	}

	ids, err := a.ListProductIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == p.ID {
			return nil
		}
	}
	ids = append(ids, p.ID)
	sort.Strings(ids)
	listData, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":products", listData)
}

var _ core.ProductStore = (*CatalogAdapter)(nil)
