package feast

import (
	"context"

	"github.com/meikit/meikit/core"
)

// FeatureGetter 是特征获取能力的抽象，便于测试替换。
type FeatureGetter interface {
	GetProductFeatures(ctx context.Context, productIDs []string, features []string) ([]map[string]interface{}, error)
}

// ProductStore 是产品目录的在线特征叠加层：基础信息走内层目录，
// 评分、评论数、实时价格从 Feast 在线特征覆盖。
// 特征库不可用或未命中时回落到目录值，特征层故障不阻断推荐。
type ProductStore struct {
	Inner    core.ProductStore
	Features FeatureGetter
}

var _ core.ProductStore = (*ProductStore)(nil)

// 特征视图中的产品特征名
const (
	featRating      = "product_stats:rating"
	featReviewCount = "product_stats:review_count"
	featPrice       = "product_stats:price"
)

func (s *ProductStore) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	prod, err := s.Inner.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s.Features == nil {
		return prod, nil
	}

	rows, err := s.Features.GetProductFeatures(ctx, []string{productID},
		[]string{featRating, featReviewCount, featPrice})
	if err != nil || len(rows) != 1 {
		return prod, nil
	}

	overlay := *prod
	if v, ok := rows[0][featRating].(float64); ok && v > 0 {
		overlay.Rating = v
	}
	if v, ok := rows[0][featReviewCount].(float64); ok && v > 0 {
		overlay.ReviewCount = int(v)
	}
	if v, ok := rows[0][featPrice].(float64); ok && v > 0 {
		overlay.Price = v
	}
	return &overlay, nil
}

func (s *ProductStore) ListProductIDs(ctx context.Context) ([]string, error) {
	return s.Inner.ListProductIDs(ctx)
}
