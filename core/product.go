package core

// Product 是产品在知识图谱中的只读快照：品牌、类目、价格、成分、功效、适用肤质。
// 推荐核心只读取产品，从不写入；写路径（抓取、清洗、入图）由外部数据链路负责。
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	BrandID     string   `json:"brand_id"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count,omitempty"`
	Ingredients []string `json:"ingredients"`
	Effects     []string `json:"effects"`
	SkinTypes   []string `json:"skin_types"` // 适用肤质
}

// SuitableFor 判断产品是否适用于给定肤质。未声明任何肤质视为通用。
func (p *Product) SuitableFor(skinType string) bool {
	if len(p.SkinTypes) == 0 {
		return true
	}
	for _, st := range p.SkinTypes {
		if st == skinType {
			return true
		}
	}
	return false
}

// Interaction 是一次用户-产品交互记录：产品、强度（点击/收藏/购买权重）、时间戳。
type Interaction struct {
	ProductID string  `json:"product_id"`
	Strength  float64 `json:"strength"`
	Timestamp int64   `json:"timestamp"`
}

// RecommendationResult 是对外输出的单条推荐：分数与置信度均落在 [0,1]。
// 同一次响应内 ProductID 唯一；Reason 由贡献信号确定性生成。
type RecommendationResult struct {
	ProductID  string  `json:"product_id"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}
