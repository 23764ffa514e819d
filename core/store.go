package core

import (
	"context"
	"strings"
)

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 避免循环依赖：领域层不依赖基础设施层
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持有序集合与哈希表。
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员（按分数排序的榜单，如肤质榜）
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员（TopN）
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在。
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// ---- 领域数据访问接口：由 store 适配器 / ext 扩展实现 ----

// InteractionStore 提供用户交互历史的只读访问。
// 历史为按时间排序的 (product_id, strength, timestamp) 序列；无历史返回空切片而非错误。
type InteractionStore interface {
	GetHistory(ctx context.Context, userID string) ([]Interaction, error)
}

// ProfileStore 提供用户声明画像的只读访问；未登记画像返回 (nil, nil)。
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
}

// ProductStore 提供产品特征的只读访问。
type ProductStore interface {
	// GetProduct 解析产品特征；不存在返回 NOT_FOUND 类错误
	GetProduct(ctx context.Context, productID string) (*Product, error)

	// ListProductIDs 返回候选产品全集（内容信号的候选域）
	ListProductIDs(ctx context.Context) ([]string, error)
}

// GraphStore 提供知识图谱的邻接访问，用于随机游走。
// 节点 ID 带类型前缀（见 ProductNode 等），边为 产品-成分 / 产品-品牌 / 产品-功效。
type GraphStore interface {
	WalkNeighbors(ctx context.Context, nodeID string) ([]string, error)
}

// FactorModel 是离线训练好的隐因子模型的只读视图。
// 请求路径只做查表与点积；训练/刷新由外部批任务负责（原子整体换入，无撕裂读）。
type FactorModel interface {
	// UserVector 返回用户隐向量；模型未覆盖该用户时返回 (nil, nil)
	UserVector(ctx context.Context, userID string) ([]float64, error)

	// AllItemVectors 返回全部产品隐向量
	AllItemVectors(ctx context.Context) (map[string][]float64, error)
}

// ---- 图节点 ID 约定 ----

const (
	nodePrefixProduct    = "product:"
	nodePrefixBrand      = "brand:"
	nodePrefixIngredient = "ingredient:"
	nodePrefixEffect     = "effect:"
)

// ProductNode 返回产品节点 ID。
func ProductNode(productID string) string { return nodePrefixProduct + productID }

// BrandNode 返回品牌节点 ID。
func BrandNode(brandID string) string { return nodePrefixBrand + brandID }

// IngredientNode 返回成分节点 ID。
func IngredientNode(name string) string { return nodePrefixIngredient + name }

// EffectNode 返回功效节点 ID。
func EffectNode(name string) string { return nodePrefixEffect + name }

// ProductIDFromNode 从节点 ID 还原产品 ID；非产品节点返回 ("", false)。
func ProductIDFromNode(nodeID string) (string, bool) {
	if strings.HasPrefix(nodeID, nodePrefixProduct) {
		return nodeID[len(nodePrefixProduct):], true
	}
	return "", false
}
