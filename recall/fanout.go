package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按源的声明顺序合并结果。
// 支持超时与并发上限。
//
// 合并契约：结果按 Sources 顺序拼接，每个源内部保持该源的排名顺序；
// Dedup 开启时按商品 ID 去重，保留先出现的（即更高优先级源的）候选。
// 这让"协同优先、兜底补位"的混排可以直接用 [hybrid, category] 表达。
// 单个源超时或出错时返回空结果，不中断其他召回源。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
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

	var mu sync.Mutex
	results := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单源失败降级为空结果，不拖垮整条链路
				return nil
			}
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}

			mu.Lock()
			results[idx] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按源顺序拼接；去重保留先出现的候选
	seen := make(map[int64]*core.Item)
	out := make([]*core.Item, 0)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if !n.Dedup {
				out = append(out, it)
				continue
			}
			if old, dup := seen[it.ID]; dup {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			seen[it.ID] = it
			out = append(out, it)
		}
	}
	return out, nil
}
