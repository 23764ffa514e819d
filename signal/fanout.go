package signal

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meikit/meikit/core"
)

// Outcome 是单个信号提供者的执行结果。
// Err 非空表示该信号不可用（舱壁隔离，不影响其他信号）。
type Outcome struct {
	Kind  core.SignalKind
	Items []*core.Item
	Err   error
}

// Fanout 并发执行一组信号提供者，结果次序与 providers 次序一致。
//
// 每个提供者独立超时；超时或出错只记录在对应 Outcome.Err 上，
// 永不让单个信号的失败拖垮整次推荐。
func Fanout(
	ctx context.Context,
	providers []Provider,
	timeout time.Duration,
	rctx *core.RecommendContext,
) []Outcome {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	outcomes := make([]Outcome, len(providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		i, p := i, p
		outcomes[i].Kind = p.Kind()
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan struct{})
			var items []*core.Item
			var err error
			go func() {
				defer close(done)
				items, err = p.Collect(cctx, rctx)
			}()
			select {
			case <-done:
				outcomes[i].Items, outcomes[i].Err = items, err
			case <-cctx.Done():
				outcomes[i].Err = cctx.Err()
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
