package similarity

import (
	"math"
	"testing"
)

func TestVectorizerTerms(t *testing.T) {
	v := &Vectorizer{Bigrams: true}
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "小写化与单字符丢弃",
			doc:  "Leather Wallet x",
			want: []string{"leather", "wallet", "leather wallet"},
		},
		{
			name: "停用词在 bigram 之前剔除",
			doc:  "wallet of leather",
			want: []string{"wallet", "leather", "wallet leather"},
		},
		{
			name: "全停用词",
			doc:  "the of and",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.terms(tt.doc)
			if len(got) != len(tt.want) {
				t.Fatalf("terms(%q) = %v, want %v", tt.doc, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("terms(%q)[%d] = %q, want %q", tt.doc, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFitTransformL2Normalized(t *testing.T) {
	v := &Vectorizer{Bigrams: true}
	rows := v.FitTransform([]string{
		"leather wallet everyday durable",
		"leather belt everyday classic",
		"ceramic mug kitchen",
	})
	for i, row := range rows {
		var norm float64
		for _, w := range row {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
			t.Errorf("文档 %d 的 L2 范数 = %v, want 1.0", i, math.Sqrt(norm))
		}
	}
}

func TestFitTransformEmptyDocIsZeroRow(t *testing.T) {
	v := &Vectorizer{Bigrams: true}
	rows := v.FitTransform([]string{"leather wallet", ""})
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if len(rows[1]) != 0 {
		t.Errorf("空文档应得到全零行，得到 %v", rows[1])
	}
}

func TestFitTransformMaxFeatures(t *testing.T) {
	// 词表截断：高频词入选，低频词按字典序竞争剩余名额
	v := &Vectorizer{MaxFeatures: 2}
	rows := v.FitTransform([]string{
		"apple apple banana",
		"apple cherry",
	})
	vocab := make(map[string]struct{})
	for _, row := range rows {
		for term := range row {
			vocab[term] = struct{}{}
		}
	}
	if len(vocab) > 2 {
		t.Errorf("词表超过上限: %v", vocab)
	}
	if _, ok := vocab["apple"]; !ok {
		t.Errorf("最高频词 apple 应在词表中: %v", vocab)
	}
	// banana 与 cherry 同频，字典序取 banana
	if _, ok := vocab["banana"]; !ok {
		t.Errorf("同频词应按字典序取 banana: %v", vocab)
	}
}

func TestFitTransformEmptyCorpus(t *testing.T) {
	v := &Vectorizer{}
	if rows := v.FitTransform(nil); rows != nil {
		t.Errorf("空语料应返回 nil，得到 %v", rows)
	}
}
