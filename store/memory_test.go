package store

import (
	"context"
	"testing"

	"github.com/meikit/meikit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) err = %v, want ErrStoreNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete err = %v, want ErrStoreNotFound", err)
	}
}

func TestMemoryStore_BatchGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_ = s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")})
	got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("BatchGet len = %d, want 2 (missing keys skipped)", len(got))
	}
}

func TestMemoryStore_ZRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_ = s.ZAdd(ctx, "z", 10, "low")
	_ = s.ZAdd(ctx, "z", 90, "high")
	_ = s.ZAdd(ctx, "z", 50, "mid")

	got, err := s.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange error: %v", err)
	}
	want := []string{"high", "mid", "low"}
	if len(got) != len(want) {
		t.Fatalf("ZRange len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	_ = s.HSet(ctx, "h", "f1", []byte("v1"))
	_ = s.HSet(ctx, "h", "f2", []byte("v2"))

	got, err := s.HGet(ctx, "h", "f1")
	if err != nil || string(got) != "v1" {
		t.Fatalf("HGet = %q, %v, want v1, nil", got, err)
	}
	all, err := s.HGetAll(ctx, "h")
	if err != nil || len(all) != 2 {
		t.Fatalf("HGetAll len = %d, %v, want 2, nil", len(all), err)
	}
	if _, err := s.HGet(ctx, "h", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("HGet missing field err = %v, want ErrStoreNotFound", err)
	}
}
