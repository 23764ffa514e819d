package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/meikit/meikit/aggregate"
	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/filter"
	"github.com/meikit/meikit/pipeline"
	"github.com/meikit/meikit/rerank"
	"github.com/meikit/meikit/signal"
)

// Recommender 是推荐服务的对外门面：装配信号提供方、融合策略与后置流水线，
// 对外只暴露产品 ID + 分数 + 理由 + 置信度的结果列表。
//
// 存储依赖全部走接口注入，内存实现与 Redis 实现可互换。
type Recommender struct {
	Users    core.InteractionStore
	Profiles core.ProfileStore // 可选，缺省时跳过画像加载
	Products core.ProductStore

	Providers map[core.SignalKind]signal.Provider

	Config core.RecommendConfig

	// Rules 是下发的 CEL 过滤规则，命中即剔除候选。
	Rules []string

	Logger *logrus.Logger
}

// NewRecommender 创建推荐服务，cfg 零值字段补默认值。
func NewRecommender(
	users core.InteractionStore,
	profiles core.ProfileStore,
	products core.ProductStore,
	providers map[core.SignalKind]signal.Provider,
	cfg core.RecommendConfig,
) *Recommender {
	return &Recommender{
		Users:     users,
		Profiles:  profiles,
		Products:  products,
		Providers: providers,
		Config:    cfg.Normalize(),
		Logger:    logrus.StandardLogger(),
	}
}

func (r *Recommender) logger() *logrus.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}

// Recommend 为用户生成推荐。
//
// algorithm 取值 collaborative / content / knowledge_graph / hybrid；
// limit <= 0 时取默认条数，超上限时压到上限。
//
// 错误语义：
//   - 未知算法或空 userID：INVALID_ARGUMENT
//   - 所有参与信号均失败：ErrRecommendationUnavailable
//   - 部分信号失败：降级继续，结果来自存活信号
//   - 冷启动（无历史）：返回空列表，nil error
func (r *Recommender) Recommend(
	ctx context.Context,
	userID string,
	algorithm string,
	limit int,
) ([]core.RecommendationResult, error) {
	algo, err := core.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidArgument,
			"recommendation: empty user id")
	}
	limit = r.clampLimit(limit)

	log := r.logger().WithFields(logrus.Fields{
		"user_id":   userID,
		"algorithm": string(algo),
		"limit":     limit,
	})

	rctx, err := r.buildContext(ctx, userID)
	if err != nil {
		log.WithError(err).Error("load user context failed")
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("recommendation: load user context: %v", err))
	}

	providers := r.selectProviders(algo)
	if len(providers) == 0 {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeNotSupported,
			fmt.Sprintf("recommendation: no provider registered for algorithm %q", algo))
	}

	outcomes := signal.Fanout(ctx, providers, r.Config.SignalTimeout, rctx)
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			log.WithError(o.Err).WithField("signal", string(o.Kind)).Warn("signal provider failed")
		}
	}
	if failed == len(outcomes) {
		return nil, core.ErrRecommendationUnavailable
	}

	items := aggregate.Combine(outcomes, &r.Config)
	items = r.enrich(ctx, log, items)

	items, err = r.postPipeline(limit).Run(ctx, rctx, items)
	if err != nil {
		log.WithError(err).Error("post pipeline failed")
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("recommendation: post pipeline: %v", err))
	}

	log.WithField("results", len(items)).Debug("recommendation done")
	return toResults(items), nil
}

// RecommendBySkinType 按肤质推荐适用产品，评分降序。
// 不依赖用户历史，可用于未登录场景。
func (r *Recommender) RecommendBySkinType(
	ctx context.Context,
	skinType string,
	limit int,
) ([]core.RecommendationResult, error) {
	if skinType == "" {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidArgument,
			"recommendation: empty skin type")
	}
	limit = r.clampLimit(limit)

	ids, err := r.Products.ListProductIDs(ctx)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("recommendation: list products: %v", err))
	}

	matched := make([]*core.Product, 0)
	for _, id := range ids {
		prod, err := r.Products.GetProduct(ctx, id)
		if err != nil {
			r.logger().WithError(err).WithField("product_id", id).Warn("load product failed, drop candidate")
			continue
		}
		if prod.SuitableFor(skinType) {
			matched = append(matched, prod)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Rating != matched[j].Rating {
			return matched[i].Rating > matched[j].Rating
		}
		if matched[i].ReviewCount != matched[j].ReviewCount {
			return matched[i].ReviewCount > matched[j].ReviewCount
		}
		return matched[i].ID < matched[j].ID
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]core.RecommendationResult, 0, len(matched))
	for _, prod := range matched {
		out = append(out, core.RecommendationResult{
			ProductID:  prod.ID,
			Score:      clamp01(prod.Rating / 5),
			Reason:     fmt.Sprintf("适合%s肌肤", skinType),
			Confidence: 0.8,
		})
	}
	return out, nil
}

// SimilarProducts 返回与指定产品内容最相似的产品列表。
func (r *Recommender) SimilarProducts(
	ctx context.Context,
	productID string,
	limit int,
) ([]core.RecommendationResult, error) {
	if productID == "" {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidArgument,
			"recommendation: empty product id")
	}
	limit = r.clampLimit(limit)

	ids, err := r.Products.ListProductIDs(ctx)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeUnavailable,
			fmt.Sprintf("recommendation: list products: %v", err))
	}

	products := make(map[string]*core.Product, len(ids))
	maxPrice := 0.0
	for _, id := range ids {
		prod, err := r.Products.GetProduct(ctx, id)
		if err != nil {
			continue
		}
		products[id] = prod
		if prod.Price > maxPrice {
			maxPrice = prod.Price
		}
	}

	target, ok := products[productID]
	if !ok {
		prod, err := r.Products.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		target = prod
	}
	targetVec := signal.ProductVector(target, maxPrice)

	type scored struct {
		prod *core.Product
		sim  float64
	}
	scores := make([]scored, 0, len(products))
	for id, prod := range products {
		if id == productID {
			continue
		}
		sim := signal.CosineSimilarity(targetVec, signal.ProductVector(prod, maxPrice))
		if sim <= 0 {
			continue
		}
		scores = append(scores, scored{prod: prod, sim: sim})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].sim != scores[j].sim {
			return scores[i].sim > scores[j].sim
		}
		if scores[i].prod.Rating != scores[j].prod.Rating {
			return scores[i].prod.Rating > scores[j].prod.Rating
		}
		return scores[i].prod.ID < scores[j].prod.ID
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}

	out := make([]core.RecommendationResult, 0, len(scores))
	for _, s := range scores {
		out = append(out, core.RecommendationResult{
			ProductID:  s.prod.ID,
			Score:      clamp01(s.sim),
			Reason:     fmt.Sprintf("与%s成分功效相似", target.Name),
			Confidence: clamp01(s.sim),
		})
	}
	return out, nil
}

// buildContext 一次性加载用户历史与画像，构造请求级上下文。
// 画像缺失不是错误；历史读取失败才视为上下文加载失败。
func (r *Recommender) buildContext(ctx context.Context, userID string) (*core.RecommendContext, error) {
	history, err := r.Users.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	rctx := &core.RecommendContext{
		UserID:  userID,
		History: history,
	}
	if r.Profiles != nil {
		profile, err := r.Profiles.GetProfile(ctx, userID)
		if err != nil {
			r.logger().WithError(err).WithField("user_id", userID).Warn("load profile failed, continue without profile")
		} else {
			rctx.User = profile
		}
	}
	return rctx, nil
}

// selectProviders 按算法挑选已注册的信号提供方，保持固定次序。
func (r *Recommender) selectProviders(algo core.Algorithm) []signal.Provider {
	kinds := algo.Kinds()
	providers := make([]signal.Provider, 0, len(kinds))
	for _, k := range kinds {
		if p, ok := r.Providers[k]; ok && p != nil {
			providers = append(providers, p)
		}
	}
	return providers
}

// enrich 从产品目录补全候选的品牌/类目/价格/评分元信息。
// 目录查不到的候选按脏数据剔除并告警，绝不让脏候选进入最终结果。
func (r *Recommender) enrich(ctx context.Context, log *logrus.Entry, items []*core.Item) []*core.Item {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		prod, err := r.Products.GetProduct(ctx, it.ID)
		if err != nil {
			log.WithError(err).WithField("product_id", it.ID).Warn("candidate not in catalog, dropped")
			continue
		}
		it.PutMeta("name", prod.Name)
		it.PutMeta("brand", prod.BrandID)
		it.PutMeta("category", prod.Category)
		it.PutMeta("price", prod.Price)
		it.PutMeta("rating", prod.Rating)
		out = append(out, it)
	}
	return out
}

// postPipeline 装配后置流水线：多样性重排 → 过滤 → Top-N 截断。
func (r *Recommender) postPipeline(limit int) *pipeline.Pipeline {
	filters := []filter.Filter{
		&filter.MinScore{Threshold: r.Config.MinScore},
	}
	if len(r.Rules) > 0 {
		filters = append(filters, &filter.Rule{Rules: r.Rules})
	}
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&rerank.Diversity{Weight: r.Config.DiversityWeight},
			&filter.Node{Filters: filters},
			&rerank.TopN{N: limit},
		},
	}
}

func (r *Recommender) clampLimit(limit int) int {
	if limit <= 0 {
		return r.Config.DefaultRecommendations
	}
	if limit > r.Config.MaxRecommendations {
		return r.Config.MaxRecommendations
	}
	return limit
}

// toResults 将流水线产物转为对外结果，分数与置信度夹紧到 [0,1]。
func toResults(items []*core.Item) []core.RecommendationResult {
	out := make([]core.RecommendationResult, 0, len(items))
	for _, it := range items {
		out = append(out, core.RecommendationResult{
			ProductID:  it.ID,
			Score:      clamp01(it.Score),
			Reason:     it.MetaString("reason"),
			Confidence: clamp01(it.MetaFloat("confidence")),
		})
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
