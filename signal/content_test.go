package signal

import (
	"context"
	"math"
	"testing"

	"github.com/meikit/meikit/core"
)

type fakeProductStore struct {
	products map[string]*core.Product
	err      error
}

func (f *fakeProductStore) GetProduct(_ context.Context, productID string) (*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound, "product not found: "+productID)
	}
	return p, nil
}

func (f *fakeProductStore) ListProductIDs(_ context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	return ids, nil
}

func contentCatalog() *fakeProductStore {
	return &fakeProductStore{products: map[string]*core.Product{
		"p1": {ID: "p1", Category: "精华", Price: 300, Rating: 4.6,
			Ingredients: []string{"玻尿酸", "烟酰胺"}, Effects: []string{"保湿"}},
		"p2": {ID: "p2", Category: "精华", Price: 280, Rating: 4.8,
			Ingredients: []string{"玻尿酸", "烟酰胺"}, Effects: []string{"保湿"}}, // 与 p1 几乎相同
		"p3": {ID: "p3", Category: "洁面", Price: 99, Rating: 4.2,
			Ingredients: []string{"水杨酸"}, Effects: []string{"控油"}}, // 与 p1 无重合
	}}
}

func TestContent_Collect(t *testing.T) {
	p := &Content{Store: contentCatalog(), Threshold: 0.5}
	rctx := &core.RecommendContext{
		UserID:  "u1",
		History: []core.Interaction{{ProductID: "p1", Strength: 5}},
	}

	items, err := p.Collect(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("Collect = %v, want exactly [p2]", items)
	}
	if items[0].Score < 0.5 {
		t.Errorf("similarity %v below threshold", items[0].Score)
	}
}

func TestContent_ExcludesInteracted(t *testing.T) {
	p := &Content{Store: contentCatalog(), Threshold: 0.1}
	rctx := &core.RecommendContext{
		UserID: "u1",
		History: []core.Interaction{
			{ProductID: "p1", Strength: 5},
			{ProductID: "p2", Strength: 3},
		},
	}
	items, err := p.Collect(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	for _, it := range items {
		if it.ID == "p1" || it.ID == "p2" {
			t.Errorf("interacted product %s leaked into candidates", it.ID)
		}
	}
}

func TestContent_ColdStart(t *testing.T) {
	p := &Content{Store: contentCatalog()}
	items, err := p.Collect(context.Background(), &core.RecommendContext{UserID: "u1"})
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if items != nil {
		t.Errorf("Collect with empty history = %v, want nil", items)
	}
}

func TestContent_StoreFailure(t *testing.T) {
	p := &Content{Store: &fakeProductStore{
		err: core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable, "store down"),
	}}
	rctx := &core.RecommendContext{
		UserID:  "u1",
		History: []core.Interaction{{ProductID: "p1"}},
	}
	if _, err := p.Collect(context.Background(), rctx); err == nil {
		t.Fatal("Collect with failing store should return error")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b map[string]float64
		want float64
	}{
		{"identical", map[string]float64{"x": 1, "y": 1}, map[string]float64{"x": 1, "y": 1}, 1},
		{"orthogonal", map[string]float64{"x": 1}, map[string]float64{"y": 1}, 0},
		{"empty", map[string]float64{}, map[string]float64{"x": 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductVector(t *testing.T) {
	vec := ProductVector(&core.Product{
		ID: "p1", Category: "精华", Price: 150,
		Ingredients: []string{"玻尿酸"}, Effects: []string{"保湿"},
	}, 300)

	if vec["ingredient:玻尿酸"] != 1 || vec["effect:保湿"] != 1 || vec["category:精华"] != 1 {
		t.Errorf("one-hot dimensions missing: %v", vec)
	}
	if vec["price"] != 0.5 {
		t.Errorf("price = %v, want 0.5 (normalized by catalog max)", vec["price"])
	}
}
