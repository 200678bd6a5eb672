package cache

import (
	"testing"

	"venue-rank-go/internal/model"
)

func TestResultCacheBasics(t *testing.T) {
	c := NewResultCache()

	if _, ok := c.Get("item1"); ok {
		t.Error("empty cache should miss")
	}

	r := &model.ResolvedRanking{
		Matches: []model.MatchResult{{SourceID: "sjr", SourceName: "SJR", Rank: "Q1 1.0", SortWeight: 1}},
	}
	c.Set("item1", r)

	got, ok := c.Get("item1")
	if !ok || got != r {
		t.Error("expected cache hit with identical pointer")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	c.Invalidate("item1")
	if _, ok := c.Get("item1"); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestResultCacheInvalidateAll(t *testing.T) {
	c := NewResultCache()
	c.Set("a", &model.ResolvedRanking{Override: "A+"})
	c.Set("b", &model.ResolvedRanking{})

	c.InvalidateAll()
	if c.Len() != 0 {
		t.Errorf("Len = %d after InvalidateAll, want 0", c.Len())
	}
}

func TestResultCacheInvalidateUnknownID(t *testing.T) {
	c := NewResultCache()
	c.Invalidate("never-seen") // 不报错不panic
}
