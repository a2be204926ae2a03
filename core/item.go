package core

import "github.com/shopkit/recommend/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选商品 + 分数 + 元信息 + 标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID     int64
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// ItemIDs 按序提取 Item 的 ID 列表，是各入口返回商品 ID 的统一出口。
func ItemIDs(items []*Item) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		ids = append(ids, it.ID)
	}
	return ids
}
