package similarity

import (
	"context"
	"strings"

	"github.com/shopkit/recommend/core"
)

// contentText 拼装商品的文本信号。字段的重复次数编码了无显式权重时的重要度：
// 描述与标签各一次，材质 ×3，品牌 ×2，类目 ×3。空字段不参与。
func contentText(p core.Product) string {
	parts := make([]string, 0, 5)
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Tags != "" {
		parts = append(parts, strings.ReplaceAll(p.Tags, ",", " "))
	}
	if p.Material != "" {
		parts = append(parts, p.Material+" "+p.Material+" "+p.Material)
	}
	if p.Brand != "" {
		parts = append(parts, p.Brand+" "+p.Brand)
	}
	if p.Category != "" {
		parts = append(parts, p.Category+" "+p.Category+" "+p.Category)
	}
	return strings.Join(parts, " ")
}

// FromCatalog 由商品文本属性计算内容相似度矩阵。
// ids 为 nil 时覆盖全部商品；商品列表为空时返回空矩阵（不是错误）。
//
// 文本全空的商品得到全零 TF-IDF 行，它与任何商品（包括自己）的相似度为 0。
func FromCatalog(ctx context.Context, catalog core.CatalogStore, ids []int64) (*Matrix, error) {
	products, err := catalog.Products(ctx, ids)
	if err != nil {
		return nil, err
	}
	return FromProducts(products), nil
}

// FromProducts 是纯函数版本的内容矩阵构建入口。
func FromProducts(products []core.Product) *Matrix {
	if len(products) == 0 {
		return NewMatrix(nil)
	}

	docs := make([]string, len(products))
	productIDs := make([]int64, len(products))
	for i, p := range products {
		docs[i] = contentText(p)
		productIDs[i] = p.ID
	}

	vectorizer := &Vectorizer{MaxFeatures: defaultMaxFeatures, Bigrams: true}
	vectors := vectorizer.FitTransform(docs)

	sim := NewMatrix(productIDs)
	for i := 0; i < len(productIDs); i++ {
		sim.Set(productIDs[i], productIDs[i], CosineSparse(vectors[i], vectors[i]))
		for j := i + 1; j < len(productIDs); j++ {
			sim.Set(productIDs[i], productIDs[j], CosineSparse(vectors[i], vectors[j]))
		}
	}
	return sim
}
