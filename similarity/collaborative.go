package similarity

import (
	"github.com/shopkit/recommend/matrix"
)

// FromInteractions 由交互矩阵计算协同过滤的物品×物品余弦相似度矩阵。
//
// 算法：矩阵转置为"商品作为行、用户作为列"的物品向量，
// 对每一对商品计算购买数量向量的余弦相似度。
//
// 性质（非负输入下成立，测试依赖）：
//   - 对称：sim(i,j) == sim(j,i)
//   - 有界：sim ∈ [0,1]
//   - 对角线为 1（交互矩阵中出现的商品向量必然非零）
//
// 输入为空矩阵时返回空相似度矩阵，不报错——调用方据此走降级链路。
func FromInteractions(interactions *matrix.Interaction) *Matrix {
	if interactions.Empty() {
		return NewMatrix(nil)
	}

	products := interactions.Products()
	vectors := make(map[int64]map[int64]float64, len(products))
	for _, p := range products {
		vectors[p] = interactions.ProductVector(p)
	}

	sim := NewMatrix(products)
	for i := 0; i < len(products); i++ {
		pi := products[i]
		sim.Set(pi, pi, CosineSparse(vectors[pi], vectors[pi]))
		for j := i + 1; j < len(products); j++ {
			pj := products[j]
			sim.Set(pi, pj, CosineSparse(vectors[pi], vectors[pj]))
		}
	}
	return sim
}
