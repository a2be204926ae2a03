package recall

import (
	"context"

	"github.com/shopkit/recommend/core"
)

// Source 表示一个可复用的召回源（混合相似度/类目兜底/热销/...）。
// 编排层按数据可用性选择召回源；Fanout 可以把多个源并发执行后合并。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
