package feast

import (
	"context"
	"errors"
	"testing"

	"github.com/meikit/meikit/core"
)

type fakeCatalog struct {
	products map[string]*core.Product
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*core.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotFound, "product not found: "+id)
	}
	return p, nil
}

func (f *fakeCatalog) ListProductIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeFeatures struct {
	rows []map[string]interface{}
	err  error
}

func (f *fakeFeatures) GetProductFeatures(context.Context, []string, []string) ([]map[string]interface{}, error) {
	return f.rows, f.err
}

func TestProductStore_Overlay(t *testing.T) {
	inner := &fakeCatalog{products: map[string]*core.Product{
		"p1": {ID: "p1", Rating: 4.0, ReviewCount: 100, Price: 299},
	}}
	s := &ProductStore{
		Inner: inner,
		Features: &fakeFeatures{rows: []map[string]interface{}{{
			featRating:      4.7,
			featReviewCount: 2500.0,
		}}},
	}

	prod, err := s.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if prod.Rating != 4.7 || prod.ReviewCount != 2500 {
		t.Errorf("overlay not applied: %+v", prod)
	}
	// 未覆盖的字段保留目录值
	if prod.Price != 299 {
		t.Errorf("price = %v, want catalog value 299", prod.Price)
	}
	// 目录原值不被改写
	if inner.products["p1"].Rating != 4.0 {
		t.Error("overlay mutated the catalog product")
	}
}

func TestProductStore_FeatureFailureFallsBack(t *testing.T) {
	s := &ProductStore{
		Inner: &fakeCatalog{products: map[string]*core.Product{
			"p1": {ID: "p1", Rating: 4.0},
		}},
		Features: &fakeFeatures{err: errors.New("feast down")},
	}
	prod, err := s.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("feature failure must fall back, got %v", err)
	}
	if prod.Rating != 4.0 {
		t.Errorf("fallback rating = %v, want 4.0", prod.Rating)
	}
}

func TestProductStore_MissingProduct(t *testing.T) {
	s := &ProductStore{Inner: &fakeCatalog{products: map[string]*core.Product{}}}
	if _, err := s.GetProduct(context.Background(), "ghost"); !core.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"string", "hello", "hello"},
		{"int64", int64(7), 7.0},
		{"float64", 3.14, 3.14},
		{"bool", true, 1.0},
		{"bytes", []byte("raw"), "raw"},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertValue(tt.in); got != tt.want {
				t.Errorf("convertValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
