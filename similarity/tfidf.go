package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRegex 在包初始化时编译一次：token 是长度 >= 2 的连续词字符。
var tokenRegex = regexp.MustCompile(`\w\w+`)

// Vectorizer 把一组文本转为 TF-IDF 稀疏向量。
//
// 语义对齐常见的 TF-IDF 实现：
//   - 小写化后按词字符切分，单字符 token 丢弃
//   - 剔除英文停用词后构造 unigram + bigram
//   - 词表限制为语料中总词频最高的 MaxFeatures 个词（词频相同按字典序）
//   - idf 平滑：ln((1+n)/(1+df)) + 1
//   - 每行 L2 归一化；全空文本得到全零行
type Vectorizer struct {
	// MaxFeatures 词表上限，<= 0 时用默认 200
	MaxFeatures int

	// Bigrams 是否在 unigram 之外加入相邻二元词组
	Bigrams bool
}

const defaultMaxFeatures = 200

// FitTransform 对语料整体建词表并返回每个文档的 TF-IDF 向量（term -> 权重）。
// 返回切片与输入文档一一对应；空语料返回空切片。
func (v *Vectorizer) FitTransform(docs []string) []map[string]float64 {
	if len(docs) == 0 {
		return nil
	}

	maxFeatures := v.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	// 1. 分词 + n-gram
	docTerms := make([][]string, len(docs))
	corpusCount := make(map[string]int)
	for i, doc := range docs {
		terms := v.terms(doc)
		docTerms[i] = terms
		for _, t := range terms {
			corpusCount[t]++
		}
	}

	// 2. 词表：总词频 Top MaxFeatures，词频相同按字典序
	vocab := make([]string, 0, len(corpusCount))
	for t := range corpusCount {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if corpusCount[vocab[i]] != corpusCount[vocab[j]] {
			return corpusCount[vocab[i]] > corpusCount[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > maxFeatures {
		vocab = vocab[:maxFeatures]
	}
	inVocab := make(map[string]struct{}, len(vocab))
	for _, t := range vocab {
		inVocab[t] = struct{}{}
	}

	// 3. 文档频率
	df := make(map[string]int, len(vocab))
	for _, terms := range docTerms {
		seen := make(map[string]struct{})
		for _, t := range terms {
			if _, ok := inVocab[t]; !ok {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	// 4. tf-idf + L2 归一化
	n := float64(len(docs))
	out := make([]map[string]float64, len(docs))
	for i, terms := range docTerms {
		tf := make(map[string]float64)
		for _, t := range terms {
			if _, ok := inVocab[t]; ok {
				tf[t]++
			}
		}

		row := make(map[string]float64, len(tf))
		var norm float64
		for t, count := range tf {
			idf := math.Log((1+n)/(1+float64(df[t]))) + 1
			w := count * idf
			row[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range row {
				row[t] /= norm
			}
		}
		out[i] = row
	}
	return out
}

// terms 分词并产出 unigram（+bigram）。停用词在构造 bigram 之前剔除。
func (v *Vectorizer) terms(doc string) []string {
	raw := tokenRegex.FindAllString(strings.ToLower(doc), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if isStopWord(t) {
			continue
		}
		tokens = append(tokens, t)
	}

	if !v.Bigrams {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
