package core

import "fmt"

// SignalKind 标识一路独立的证据来源（信号）。
type SignalKind string

const (
	SignalCollaborative SignalKind = "collaborative"   // 协同过滤：隐因子亲和度
	SignalContent       SignalKind = "content"         // 内容相似：成分/功效/类目/价格
	SignalGraphWalk     SignalKind = "knowledge_graph" // 知识图谱：随机游走访问频率
)

// Algorithm 是对外请求的算法选项：单信号或混合。
type Algorithm string

const (
	AlgorithmCollaborative Algorithm = Algorithm(SignalCollaborative)
	AlgorithmContent       Algorithm = Algorithm(SignalContent)
	AlgorithmGraphWalk     Algorithm = Algorithm(SignalGraphWalk)
	AlgorithmHybrid        Algorithm = "hybrid"
)

// ParseAlgorithm 解析算法选项；未知取值返回 INVALID_ARGUMENT，绝不静默回退。
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmCollaborative, AlgorithmContent, AlgorithmGraphWalk, AlgorithmHybrid:
		return Algorithm(s), nil
	}
	return "", NewDomainError(ModuleService, ErrorCodeInvalidArgument,
		fmt.Sprintf("recommendation: unknown algorithm %q", s))
}

// Kinds 返回该算法需要参与的信号；hybrid 返回全部三路。
func (a Algorithm) Kinds() []SignalKind {
	if a == AlgorithmHybrid {
		return []SignalKind{SignalCollaborative, SignalContent, SignalGraphWalk}
	}
	return []SignalKind{SignalKind(a)}
}
