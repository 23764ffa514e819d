// Package builders 在 init 中注册内置 Node 的构建器，
// 供配置驱动的流水线装配使用：import _ "github.com/meikit/meikit/config/builders"。
package builders

import (
	"fmt"

	"github.com/meikit/meikit/config"
	"github.com/meikit/meikit/filter"
	"github.com/meikit/meikit/pipeline"
	"github.com/meikit/meikit/pkg/conv"
	"github.com/meikit/meikit/rerank"
)

func init() {
	config.Register("rerank.diversity", buildDiversityNode)
	config.Register("rerank.topn", buildTopNNode)
	config.Register("filter", buildFilterNode)
}

func buildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		Weight: conv.ConfigGetFloat(cfg, "weight", 0),
	}, nil
}

func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{
		N: conv.ConfigGetInt(cfg, "n", 0),
	}, nil
}

func buildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet[string](filterMap, "type", "")
		switch filterType {
		case "min_score":
			filters = append(filters, &filter.MinScore{
				Threshold: conv.ConfigGetFloat(filterMap, "threshold", 0),
			})
		case "rule":
			rules := make([]string, 0)
			if raw, ok := filterMap["rules"].([]interface{}); ok {
				for _, r := range raw {
					if s, ok := r.(string); ok && s != "" {
						rules = append(rules, s)
					}
				}
			}
			filters = append(filters, &filter.Rule{Rules: rules})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.Node{Filters: filters}, nil
}
