// Package similarity 提供物品×物品相似度矩阵的两种来源：
//   - 协同过滤：由用户×商品交互矩阵转置后做两两余弦相似度
//   - 内容相似：由商品文本属性的 TF-IDF 向量做两两余弦相似度
//
// 两种矩阵都是对称的，值域 [0,1]，缺失条目语义为 0，请求级构建。
package similarity

import "sort"

// Matrix 是稀疏对称的物品×物品相似度矩阵。
type Matrix struct {
	rows map[int64]map[int64]float64
	ids  []int64 // 升序，构建时固定
}

// NewMatrix 创建一个以 ids 为行列的空相似度矩阵。
func NewMatrix(ids []int64) *Matrix {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rows := make(map[int64]map[int64]float64, len(sorted))
	for _, id := range sorted {
		rows[id] = make(map[int64]float64)
	}
	return &Matrix{rows: rows, ids: sorted}
}

// Set 写入 sim(i,j)，同时写入对称位置。零值不存储（稀疏默认即 0）。
func (m *Matrix) Set(i, j int64, score float64) {
	if score == 0 {
		return
	}
	if row, ok := m.rows[i]; ok {
		row[j] = score
	}
	if row, ok := m.rows[j]; ok {
		row[i] = score
	}
}

// Score 读取 sim(i,j)，缺失条目为 0。
func (m *Matrix) Score(i, j int64) float64 {
	if m == nil {
		return 0
	}
	return m.rows[i][j]
}

// Has 判断商品是否是矩阵的行。
func (m *Matrix) Has(id int64) bool {
	if m == nil {
		return false
	}
	_, ok := m.rows[id]
	return ok
}

// Empty 判断矩阵是否为空。
func (m *Matrix) Empty() bool {
	return m == nil || len(m.ids) == 0
}

// Products 返回矩阵的全部商品 ID（升序）。
// 游历某一行时用它保证确定性的遍历顺序。
func (m *Matrix) Products() []int64 {
	if m == nil {
		return nil
	}
	return m.ids
}
