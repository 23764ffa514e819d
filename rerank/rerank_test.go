package rerank

import (
	"context"
	"testing"

	"github.com/meikit/meikit/core"
)

func metaItem(id string, score float64, brand, category string) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	it.PutMeta("brand", brand)
	it.PutMeta("category", category)
	return it
}

func ids(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDiversity_PenalizesSameBrand(t *testing.T) {
	// 三个同品牌高分 + 一个异品牌略低分：多样性惩罚应把异品牌提前
	items := []*core.Item{
		metaItem("a1", 0.95, "b1", "精华"),
		metaItem("a2", 0.94, "b1", "精华"),
		metaItem("a3", 0.93, "b1", "精华"),
		metaItem("x1", 0.80, "b2", "面霜"),
	}
	n := &Diversity{Weight: 0.5}
	got, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	order := ids(got)
	if order[0] != "a1" {
		t.Errorf("top = %s, want a1 (highest raw score picked first)", order[0])
	}
	if order[1] != "x1" {
		t.Errorf("second = %s, want x1 (same-brand candidates penalized)", order[1])
	}
	if len(got) != len(items) {
		t.Errorf("diversity must reorder, not drop: len = %d", len(got))
	}
}

func TestDiversity_WritesBackPenalizedScore(t *testing.T) {
	// m1/m2 同品牌：m2 的衰减分应回写到 Score，返回列表按分数单调不增
	items := []*core.Item{
		metaItem("m1", 1.0, "b1", "精华"),
		metaItem("m2", 0.8, "b1", "面霜"),
		metaItem("m3", 0.7, "b2", "洁面"),
		metaItem("m4", 0.1, "b3", "面膜"),
	}
	n := &Diversity{Weight: 0.5}
	got, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	want := []string{"m1", "m3", "m2", "m4"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
	// m2 与已选的 m1 共享品牌 b1，有效分 0.8*(1-0.5)^1
	if got[2].Score != 0.4 {
		t.Errorf("m2 score = %v, want 0.4 (penalty written back)", got[2].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("score order broken at %d: %v > %v", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestDiversity_ZeroWeightKeepsOrder(t *testing.T) {
	items := []*core.Item{
		metaItem("a1", 0.9, "b1", "精华"),
		metaItem("a2", 0.8, "b1", "精华"),
	}
	n := &Diversity{Weight: 0}
	got, err := n.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	order := ids(got)
	if order[0] != "a1" || order[1] != "a2" {
		t.Errorf("order = %v, want unchanged [a1 a2]", order)
	}
}

func TestDiversity_Deterministic(t *testing.T) {
	build := func() []*core.Item {
		return []*core.Item{
			metaItem("a", 0.9, "b1", "精华"),
			metaItem("b", 0.9, "b1", "精华"),
			metaItem("c", 0.9, "b2", "面霜"),
		}
	}
	n := &Diversity{Weight: 0.3}
	first, _ := n.Process(context.Background(), nil, build())
	second, _ := n.Process(context.Background(), nil, build())
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("runs differ at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestTopN(t *testing.T) {
	items := []*core.Item{
		metaItem("a", 0.9, "", ""),
		metaItem("b", 0.8, "", ""),
		metaItem("c", 0.7, "", ""),
	}
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"no-op when larger", 10, 3},
		{"zero keeps all", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopN{N: tt.n}
			got, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
