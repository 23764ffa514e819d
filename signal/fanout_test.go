package signal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meikit/meikit/core"
)

type stubProvider struct {
	kind  core.SignalKind
	items []*core.Item
	err   error
	delay time.Duration
}

func (s *stubProvider) Kind() core.SignalKind { return s.kind }
func (s *stubProvider) Name() string          { return "stub." + string(s.kind) }

func (s *stubProvider) Collect(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func TestFanout_PreservesOrder(t *testing.T) {
	providers := []Provider{
		&stubProvider{kind: core.SignalCollaborative, items: []*core.Item{core.NewItem("p1")}},
		&stubProvider{kind: core.SignalContent, items: []*core.Item{core.NewItem("p2")}},
		&stubProvider{kind: core.SignalGraphWalk, items: []*core.Item{core.NewItem("p3")}},
	}
	outcomes := Fanout(context.Background(), providers, time.Second, &core.RecommendContext{UserID: "u1"})

	if len(outcomes) != 3 {
		t.Fatalf("outcomes len = %d, want 3", len(outcomes))
	}
	wantKinds := []core.SignalKind{core.SignalCollaborative, core.SignalContent, core.SignalGraphWalk}
	for i, want := range wantKinds {
		if outcomes[i].Kind != want {
			t.Errorf("outcomes[%d].Kind = %s, want %s", i, outcomes[i].Kind, want)
		}
		if outcomes[i].Err != nil {
			t.Errorf("outcomes[%d].Err = %v", i, outcomes[i].Err)
		}
	}
}

func TestFanout_IsolatesFailure(t *testing.T) {
	providers := []Provider{
		&stubProvider{kind: core.SignalCollaborative, err: errors.New("model down")},
		&stubProvider{kind: core.SignalContent, items: []*core.Item{core.NewItem("p2")}},
	}
	outcomes := Fanout(context.Background(), providers, time.Second, &core.RecommendContext{UserID: "u1"})

	if outcomes[0].Err == nil {
		t.Error("failing provider should carry its error")
	}
	if outcomes[1].Err != nil || len(outcomes[1].Items) != 1 {
		t.Errorf("healthy provider affected by sibling failure: %+v", outcomes[1])
	}
}

func TestFanout_Timeout(t *testing.T) {
	providers := []Provider{
		&stubProvider{kind: core.SignalCollaborative, delay: 500 * time.Millisecond},
		&stubProvider{kind: core.SignalContent, items: []*core.Item{core.NewItem("p2")}},
	}
	start := time.Now()
	outcomes := Fanout(context.Background(), providers, 50*time.Millisecond, &core.RecommendContext{UserID: "u1"})
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("Fanout blocked %v on a slow provider", elapsed)
	}

	if outcomes[0].Err == nil {
		t.Error("slow provider should time out")
	}
	if outcomes[1].Err != nil {
		t.Errorf("fast provider affected by sibling timeout: %v", outcomes[1].Err)
	}
}
