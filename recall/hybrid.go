package recall

import (
	"context"
	"sort"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/utils"
	"github.com/shopkit/recommend/similarity"
)

// 混合打分的线性融合权重。固定的契约常数，不随请求配置。
const (
	collaborativeWeight = 0.6
	contentWeight       = 0.4
)

// Hybrid 是混合召回源：对每个种子商品，把协同相似度矩阵与内容相似度矩阵
// 中该种子所在行的分数累加到候选上（跨种子求和而非平均——与多个种子都
// 相似的候选应排得更靠前），再按 cf*0.6 + content*0.4 线性融合。
//
// 内容矩阵为 nil 时退化为纯协同召回（个性化链路使用），分数即 cf 累加值。
//
// 种子商品与排除集中的商品在累加阶段就被跳过，永远不会成为候选。
// 两个矩阵都不含任何种子行时返回空列表（不是错误）——调用方据此切换兜底策略。
//
// 工程性质：
//   - 确定性：种子按调用方给定顺序、矩阵行按商品 ID 升序遍历，
//     候选的首次插入顺序即并列分数时的先后顺序（稳定排序保持）
//   - 实时性：矩阵是请求级的，本源不持有跨请求状态
type Hybrid struct {
	// Collaborative 协同相似度矩阵（可为空矩阵）
	Collaborative *similarity.Matrix

	// Content 内容相似度矩阵；nil 表示本次不使用内容信号
	Content *similarity.Matrix

	// TopK 返回的候选数量上限；<= 0 时不截断。
	// 编排层通常不在这里截断，而是在质量调整、重排之后用 rerank.TopNNode 收口。
	TopK int
}

func (r *Hybrid) Name() string {
	return "recall.hybrid"
}

func (r *Hybrid) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hybrid) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil || len(rctx.Seeds) == 0 {
		return nil, nil
	}

	seedSet := make(map[int64]struct{}, len(rctx.Seeds))
	for _, s := range rctx.Seeds {
		seedSet[s] = struct{}{}
	}

	type accumulator struct {
		cf      float64
		content float64
	}
	scores := make(map[int64]*accumulator)
	order := make([]int64, 0) // 候选首次插入顺序，决定并列分数的先后

	accumulate := func(m *similarity.Matrix, seed int64, collaborative bool) {
		if m == nil || !m.Has(seed) {
			return
		}
		for _, candidate := range m.Products() {
			if candidate == seed {
				continue
			}
			if _, isSeed := seedSet[candidate]; isSeed {
				continue
			}
			if rctx.Excluded(candidate) {
				continue
			}
			acc, ok := scores[candidate]
			if !ok {
				acc = &accumulator{}
				scores[candidate] = acc
				order = append(order, candidate)
			}
			if collaborative {
				acc.cf += m.Score(seed, candidate)
			} else {
				acc.content += m.Score(seed, candidate)
			}
		}
	}

	for _, seed := range rctx.Seeds {
		accumulate(r.Collaborative, seed, true)
	}
	for _, seed := range rctx.Seeds {
		accumulate(r.Content, seed, false)
	}

	if len(order) == 0 {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		acc := scores[id]
		it := core.NewItem(id)
		if r.Content != nil {
			it.Score = acc.cf*collaborativeWeight + acc.content*contentWeight
		} else {
			it.Score = acc.cf
		}
		it.PutLabel("recall_source", utils.Label{Value: "hybrid", Source: "recall"})
		out = append(out, it)
	}

	// 稳定排序：分数相同的候选保持插入顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if r.TopK > 0 && len(out) > r.TopK {
		out = out[:r.TopK]
	}
	return out, nil
}
