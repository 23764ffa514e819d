// Package meikit 是一个混合式化妆品推荐核心（Makeup Recommender Kit）。
//
// 设计要点：
// - 多信号并行：协同过滤 / 内容相似 / 知识图谱游走，独立超时、独立降级
// - 融合决策：逐信号归一化 + 权重合并，附带理由与置信度
// - Pipeline-first: 后置处理通过 Node 串联（Aggregate → ReRank → Filter）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package meikit

import "github.com/meikit/meikit/pipeline"

// 轻量 facade：便于用户直接 import "meikit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindSignal    = pipeline.KindSignal
	KindAggregate = pipeline.KindAggregate
	KindFilter    = pipeline.KindFilter
	KindReRank    = pipeline.KindReRank
)
