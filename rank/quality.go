// Package rank 提供候选打分阶段的 Node。本仓库的打分核心是评分质量调整：
// 用 Wilson 置信下界把"统计上可信的差评"降权、"统计上可信的好评"加权，
// 证据不足（新品冷启动）时保持中性。
package rank

import (
	"context"
	"math"
	"strconv"

	"github.com/shopkit/recommend/core"
	"github.com/shopkit/recommend/pipeline"
	"github.com/shopkit/recommend/pkg/utils"
)

// 质量因子的全部边界常数。这些值是固定的契约常数，不随请求配置。
const (
	wilsonZ = 1.96 // 95% 置信

	minCountForPenalty = 5  // 评论数不足 5 条不做任何调整
	minCountForBoost   = 10 // 加权额外要求至少 10 条评论

	poorRatingBelow     = 3.5 // 均分低于此值进入降权分支
	excellentRatingFrom = 4.5 // 均分不低于此值（且评论数够）进入加权分支

	boostFloor, boostCap     = 1.0, 1.2
	penaltyFloor, penaltyCap = 0.5, 1.0
	neutralFloor, neutralCap = 0.9, 1.1
)

// wilsonLowerBound 计算 Bernoulli 成功率 p 在 n 次观测下的 Wilson 置信下界。
func wilsonLowerBound(p float64, n int, z float64) float64 {
	nf := float64(n)
	denom := 1 + z*z/nf
	center := p + z*z/(2*nf)
	spread := z * math.Sqrt((p*(1-p)+z*z/(4*nf))/nf)
	return (center - spread) / denom
}

// QualityFactor 计算商品的评分质量因子。
//
// 五路分支（边界语义是精确契约）：
//   - 无评论：1.0，新品不受惩罚
//   - 评论数 < 5：1.0，证据不足
//   - 均分 >= 4.5 且评论数 >= 10：加权，封顶 1.2
//   - 均分 < 3.5：降权，保底 0.5
//   - 其余（3.5–4.5 的中间带，或好评但评论不足 10 条）：近中性 [0.9, 1.1]
//
// 1–5 星均分映射为成功率 p = (avg-1)/4，再取 Wilson 下界作为保守的"真实质量"估计。
func QualityFactor(ratingAvg float64, ratingCount int) float64 {
	if ratingCount == 0 {
		return 1.0
	}
	if ratingCount < minCountForPenalty {
		return 1.0
	}

	p := (ratingAvg - 1) / 4
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	lower := wilsonLowerBound(p, ratingCount, wilsonZ)

	switch {
	case ratingAvg >= excellentRatingFrom && ratingCount >= minCountForBoost:
		return clamp(1.0+(lower-0.5)*0.4, boostFloor, boostCap)
	case ratingAvg < poorRatingBelow:
		return clamp(0.5+lower, penaltyFloor, penaltyCap)
	default:
		return clamp(0.9+lower*0.2, neutralFloor, neutralCap)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// QualityNode 是评分质量调整 Node：对每个候选的分数乘以质量因子。
// 目录中查不到的商品视为无评论（因子 1.0），缺数据不是错误。
type QualityNode struct {
	Catalog core.CatalogStore
}

func (n *QualityNode) Name() string {
	return "rank.quality"
}

func (n *QualityNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *QualityNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it != nil {
			ids = append(ids, it.ID)
		}
	}
	products, err := n.Catalog.Products(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]core.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		factor := 1.0
		if p, ok := byID[it.ID]; ok {
			factor = QualityFactor(p.RatingAvg, p.RatingCount)
		}
		it.Score *= factor
		it.PutLabel("quality_factor", utils.Label{
			Value:  strconv.FormatFloat(factor, 'f', 4, 64),
			Source: "rank",
		})
	}
	return items, nil
}
