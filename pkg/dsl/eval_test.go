package dsl

import (
	"testing"

	"github.com/meikit/meikit/core"
	"github.com/meikit/meikit/pkg/utils"
)

func TestEval_Evaluate(t *testing.T) {
	item := core.NewItem("p1")
	item.Score = 0.8
	item.PutMeta("price", 399.0)
	item.PutMeta("category", "面霜")
	item.PutLabel("signal_source", utils.Label{Value: "content", Source: "signal"})

	rctx := &core.RecommendContext{
		UserID: "u1",
		User:   &core.UserProfile{UserID: "u1", SkinType: "干性", BudgetMax: 300},
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty expr is true", "", true, false},
		{"score compare", "item.score >= 0.5", true, false},
		{"meta number", "item.meta.price > 300.0", true, false},
		{"meta string", `item.meta.category == "面霜"`, true, false},
		{"label shortcut", `label.signal_source.contains("content")`, true, false},
		{"user budget", "user.budget_max > 0.0 && item.meta.price > user.budget_max", true, false},
		{"user skin type", `user.skin_type == "油性"`, false, false},
		{"compile error", "((broken", false, true},
		{"non-bool result", "item.score", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(item, rctx).Evaluate(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q) expected error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEval_NilProfile(t *testing.T) {
	item := core.NewItem("p1")
	got, err := NewEval(item, &core.RecommendContext{UserID: "u1"}).Evaluate("user.budget_max == 0.0")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if !got {
		t.Error("missing profile should expose zero budget")
	}
}
