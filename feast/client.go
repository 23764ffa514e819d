// Package feast 对接 Feast 在线特征库，为产品候选补充实时特征
// （评分、评论数、实时价格等）。
package feast

import (
	"context"
	"fmt"
	"strconv"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
)

// Client 是基于官方 Feast Go SDK 的 gRPC 客户端。
type Client struct {
	client  *feastsdk.GrpcClient
	Project string
	Timeout time.Duration
}

// NewClient 连接 Feast Feature Server。port 为 0 时取默认 gRPC 端口 6565。
func NewClient(host string, port int, project string) (*Client, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", host, port, err)
	}
	return &Client{
		client:  client,
		Project: project,
		Timeout: 5 * time.Second,
	}, nil
}

// GetProductFeatures 按产品 ID 批量获取在线特征。
// 返回与 productIDs 等长的特征 map 列表，缺失的特征不出现在 map 中。
func (c *Client) GetProductFeatures(
	ctx context.Context,
	productIDs []string,
	features []string,
) ([]map[string]interface{}, error) {
	if len(productIDs) == 0 || len(features) == 0 {
		return nil, nil
	}

	entityRows := make([]feastsdk.Row, len(productIDs))
	for i, id := range productIDs {
		row := make(feastsdk.Row)
		row["product_id"] = feastsdk.StrVal(id)
		entityRows[i] = row
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: features,
		Entities: entityRows,
		Project:  c.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(productIDs) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d",
			len(productIDs), len(rows))
	}

	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		values := make(map[string]interface{}, len(features))
		for _, name := range features {
			if val, ok := row[name]; ok {
				if converted := convertValue(val); converted != nil {
					values[name] = converted
				}
			}
		}
		out[i] = values
	}
	return out, nil
}

// convertValue 把 SDK 返回值统一为 string/float64。
// SDK 的 Value 是 protobuf 包装类型，先断言常见标量，兜底走字符串解析。
func convertValue(val interface{}) interface{} {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case string:
		return v
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case bool:
		if v {
			return float64(1)
		}
		return float64(0)
	case []byte:
		return string(v)
	default:
		strVal := fmt.Sprintf("%v", val)
		if f, err := strconv.ParseFloat(strVal, 64); err == nil {
			return f
		}
		return strVal
	}
}
