package core

import "github.com/shopkit/recommend/pkg/utils"

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID int64  // 目标用户，正整数；Trending 场景可为 0
	Scene  string // cart / personalized / trending

	// Seeds 是本次请求的种子商品（购物车内容、历史购买等），
	// 由编排层填充，Recall 源据此产出候选。
	Seeds []int64

	// Exclude 是本次请求不允许出现在结果中的商品集合（种子自身、已购等）。
	Exclude map[int64]struct{}

	// Limit 是调用方期望的结果数量上限。
	Limit int

	// Labels 是用户级标签，可驱动整个 Pipeline 行为（新用户、冷启动等）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、渠道等），供规则过滤器取用。
	Params map[string]any
}

// Excluded 判断商品是否在排除集中。
func (rctx *RecommendContext) Excluded(productID int64) bool {
	if rctx == nil || rctx.Exclude == nil {
		return false
	}
	_, ok := rctx.Exclude[productID]
	return ok
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
