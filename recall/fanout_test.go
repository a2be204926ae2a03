package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopkit/recommend/core"
)

type stubSource struct {
	name  string
	ids   []int64
	err   error
	delay time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}

func TestFanoutMergePreservesSourceOrder(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "primary", ids: []int64{3, 1}, delay: 10 * time.Millisecond},
			&stubSource{name: "fallback", ids: []int64{5, 7}},
		},
	}
	items, err := fanout.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	// 即使 fallback 先返回，结果仍按 Sources 声明顺序拼接
	want := []int64{3, 1, 5, 7}
	got := core.ItemIDs(items)
	if len(got) != len(want) {
		t.Fatalf("得到 %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("位置 %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFanoutDedupKeepsFirst(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "a", ids: []int64{1, 2}},
			&stubSource{name: "b", ids: []int64{2, 3}},
		},
		Dedup: true,
	}
	items, err := fanout.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []int64{1, 2, 3}
	got := core.ItemIDs(items)
	if len(got) != len(want) {
		t.Fatalf("得到 %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("位置 %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFanoutSourceErrorDegrades(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "broken", err: errors.New("boom")},
			&stubSource{name: "ok", ids: []int64{9}},
		},
	}
	items, err := fanout.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("单源失败不应中断链路: %v", err)
	}
	if got := core.ItemIDs(items); len(got) != 1 || got[0] != 9 {
		t.Errorf("得到 %v, want [9]", got)
	}
}

func TestFanoutTimeout(t *testing.T) {
	fanout := &Fanout{
		Sources: []Source{
			&stubSource{name: "slow", ids: []int64{1}, delay: 500 * time.Millisecond},
			&stubSource{name: "fast", ids: []int64{2}},
		},
		Timeout: 20 * time.Millisecond,
	}
	items, err := fanout.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := core.ItemIDs(items); len(got) != 1 || got[0] != 2 {
		t.Errorf("超时源应被丢弃，得到 %v", got)
	}
}
