package core

import "time"

// RecommendConfig 是推荐核心的全量配置：进程启动时构造，生命周期内不可变，
// 显式传入 Service，绝不读全局状态。热更新（若需要）由外部重建 Service 实现。
type RecommendConfig struct {
	// 协同过滤：隐因子数与训练轮数（离线训练用，在线只消费训练产物）
	NFactors int `yaml:"n_factors"`
	NEpochs  int `yaml:"n_epochs"`

	// 内容相似：余弦相似度阈值
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// 知识图谱游走：单次游走步数上限与游走次数上限（硬预算，保证终止）
	WalkLength int `yaml:"walk_length"`
	NumWalks   int `yaml:"num_walks"`

	// 结果策略
	MaxRecommendations     int     `yaml:"max_recommendations"`
	DefaultRecommendations int     `yaml:"default_recommendations"`
	MinScore               float64 `yaml:"min_score"`
	DiversityWeight        float64 `yaml:"diversity_weight"`

	// SignalWeights 各信号在 hybrid 合并中的权重；为空时参与信号等权。
	SignalWeights map[SignalKind]float64 `yaml:"signal_weights"`

	// SignalTimeout 单个信号提供方的超时；超时按信号失败处理，不影响同级信号。
	SignalTimeout time.Duration `yaml:"signal_timeout"`
}

// DefaultRecommendConfig 返回带默认值的配置。
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		NFactors:               16,
		NEpochs:                20,
		SimilarityThreshold:    0.7,
		WalkLength:             10,
		NumWalks:               50,
		MaxRecommendations:     20,
		DefaultRecommendations: 10,
		MinScore:               0,
		DiversityWeight:        0,
		SignalTimeout:          2 * time.Second,
	}
}

// Normalize 补齐零值字段为默认值，返回修正后的副本。
func (c RecommendConfig) Normalize() RecommendConfig {
	def := DefaultRecommendConfig()
	if c.NFactors <= 0 {
		c.NFactors = def.NFactors
	}
	if c.NEpochs <= 0 {
		c.NEpochs = def.NEpochs
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = def.SimilarityThreshold
	}
	if c.WalkLength <= 0 {
		c.WalkLength = def.WalkLength
	}
	if c.NumWalks <= 0 {
		c.NumWalks = def.NumWalks
	}
	if c.MaxRecommendations <= 0 {
		c.MaxRecommendations = def.MaxRecommendations
	}
	if c.DefaultRecommendations <= 0 {
		c.DefaultRecommendations = def.DefaultRecommendations
	}
	if c.DefaultRecommendations > c.MaxRecommendations {
		c.DefaultRecommendations = c.MaxRecommendations
	}
	if c.SignalTimeout <= 0 {
		c.SignalTimeout = def.SignalTimeout
	}
	return c
}

// Weight 返回某信号的合并权重；未配置时按参与信号数等权。
func (c RecommendConfig) Weight(kind SignalKind, participating int) float64 {
	if w, ok := c.SignalWeights[kind]; ok && w > 0 {
		return w
	}
	if participating <= 0 {
		return 0
	}
	return 1.0 / float64(participating)
}
