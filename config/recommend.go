package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meikit/meikit/core"
)

// LoadRecommendConfig 从 YAML 文件加载推荐配置，零值字段补默认值。
//
// 示例：
//
//	similarity_threshold: 0.7
//	walk_length: 10
//	num_walks: 50
//	max_recommendations: 20
//	signal_weights:
//	  collaborative: 0.4
//	  content: 0.3
//	  knowledge_graph: 0.3
func LoadRecommendConfig(path string) (core.RecommendConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.RecommendConfig{}, fmt.Errorf("read file: %w", err)
	}

	var cfg core.RecommendConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return core.RecommendConfig{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.Normalize(), nil
}
