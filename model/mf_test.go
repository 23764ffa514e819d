package model

import (
	"context"
	"math"
	"testing"
)

func trainingData() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"u1": {"p1": 5, "p2": 4},
		"u2": {"p1": 4, "p3": 5},
		"u3": {"p2": 2, "p3": 5},
	}
}

func TestMF_FitDeterministic(t *testing.T) {
	a := &MF{Factors: 8, Epochs: 10, Seed: 42}
	a.Fit(trainingData())
	b := &MF{Factors: 8, Epochs: 10, Seed: 42}
	b.Fit(trainingData())

	for _, pair := range [][2]string{{"u1", "p1"}, {"u2", "p3"}, {"u3", "p2"}} {
		pa, pb := a.Predict(pair[0], pair[1]), b.Predict(pair[0], pair[1])
		if pa != pb {
			t.Errorf("Predict(%s,%s) not deterministic: %v vs %v", pair[0], pair[1], pa, pb)
		}
	}
}

func TestMF_PredictLearnsPreference(t *testing.T) {
	m := &MF{Factors: 8, Epochs: 50, Seed: 1}
	m.Fit(trainingData())

	// u1 对 p1 评 5 分、p2 评 4 分，拟合后预测应保持同序
	if m.Predict("u1", "p1") <= 0 {
		t.Errorf("Predict(u1,p1) = %v, want positive affinity", m.Predict("u1", "p1"))
	}
}

func TestMF_UserVector(t *testing.T) {
	m := &MF{Factors: 4, Epochs: 5, Seed: 7}
	m.Fit(trainingData())
	ctx := context.Background()

	vec, err := m.UserVector(ctx, "u1")
	if err != nil {
		t.Fatalf("UserVector(u1) error: %v", err)
	}
	if len(vec) != 4 {
		t.Fatalf("UserVector(u1) len = %d, want 4", len(vec))
	}

	// 模型未覆盖的用户返回 (nil, nil)，不是错误
	vec, err = m.UserVector(ctx, "stranger")
	if err != nil {
		t.Fatalf("UserVector(stranger) error: %v", err)
	}
	if vec != nil {
		t.Errorf("UserVector(stranger) = %v, want nil", vec)
	}
}

func TestMF_AllItemVectors(t *testing.T) {
	m := &MF{Factors: 4, Epochs: 5, Seed: 7}
	m.Fit(trainingData())

	vecs, err := m.AllItemVectors(context.Background())
	if err != nil {
		t.Fatalf("AllItemVectors error: %v", err)
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		v, ok := vecs[id]
		if !ok {
			t.Fatalf("AllItemVectors missing %s", id)
		}
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("item vector %s contains %v", id, f)
			}
		}
	}
}
