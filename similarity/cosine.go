package similarity

import "math"

// CosineSparse 计算两个稀疏向量的余弦相似度。
// 范数在完整向量上计算（缺失条目为 0），点积只需遍历交集。
// 零向量的余弦相似度在数学上无定义，这里按约定返回 0，避免 NaN 向下游传播。
func CosineSparse[K comparable](a, b map[K]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	// 点积只在较小的向量上遍历
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k, va := range small {
		if vb, ok := large[k]; ok {
			dot += va * vb
		}
	}
	if dot == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
