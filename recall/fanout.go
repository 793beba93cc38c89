package recall

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vijeth06/Travel-blog--sub001/core"
	"github.com/vijeth06/Travel-blog--sub001/pipeline"
	"github.com/vijeth06/Travel-blog--sub001/pkg/metrics"
	"github.com/vijeth06/Travel-blog--sub001/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并集合并结果。
// 跨源去重不在这里做，由融合层统一处理（保留各源贡献用于 reason）。
//
// 单个召回源失败或超时只丢弃该源的结果，不中断其他源。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间，0 表示不限制
	MaxConcurrent int           // 最大并发数（0 表示无限制）

	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu  sync.Mutex
		all []*core.Item
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		s := src
		priority := i // 索引越小优先级越高

		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单源失败只缩小候选集，不中断批次
				n.Logger.Warn().Err(err).Str("source", s.Name()).
					Str("code", core.ErrorCodeComputationSkipped).
					Msg("recall source failed")
				return nil
			}
			if n.Metrics != nil {
				n.Metrics.RecallItems.WithLabelValues(s.Name()).Add(float64(len(items)))
			}

			for _, it := range items {
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(priority), Source: "recall"})
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}
