package source

import (
	"fmt"
	"testing"

	"venue-rank-go/internal/model"
)

func testCoreSource(entries []model.ReferenceEntry) *RankingSource {
	return NewCoreSource(entries, "core", 2)
}

func TestCoreExactMatch(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "International Conference on Machine Learning", Rank: "A* [2023]", Acronym: "ICML"},
	})

	rank, ok := src.Match("International Conference on Machine Learning", nil)
	if !ok || rank != "A* [2023]" {
		t.Errorf("exact match failed: %q, %v", rank, ok)
	}

	// 清洗后精确：年份和Proceedings前缀不影响
	rank, ok = src.Match("Proceedings of the International Conference on Machine Learning 2023", nil)
	if !ok || rank != "A* [2023]" {
		t.Errorf("cleaned exact match failed: %q, %v", rank, ok)
	}
}

func TestCoreSubstring(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "European Symposium on Research in Computer Security", Rank: "A [2023]", Acronym: "ESORICS"},
		{Title: "Very Short", Rank: "B [2023]", Acronym: ""},
	})

	// 参考标题（长度>20）是输入的子串
	title := "Selected Papers from the European Symposium on Research in Computer Security Workshops"
	rank, ok := src.Match(title, nil)
	fmt.Printf("CORE substring match for %q: %q, %v\n", title, rank, ok)
	if !ok || rank != "A [2023]" {
		t.Errorf("substring match failed: %q, %v", rank, ok)
	}

	// 短参考标题不允许走子串策略
	if _, ok := src.Match("Contains Very Short Inside Somewhere", nil); ok {
		t.Error("short reference title must not substring-match")
	}
}

func TestCoreReverseSubstring(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "ACM SIGCOMM Conference on Data Communication Networks and Protocols", Rank: "A* [2023]", Acronym: "SIGCOMM"},
	})

	// 输入（长度>20）是参考标题的子串
	rank, ok := src.Match("Conference on Data Communication Networks", nil)
	if !ok || rank != "A* [2023]" {
		t.Errorf("reverse substring match failed: %q, %v", rank, ok)
	}
}

func TestCoreWordOverlap(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "Global Workshop on Distributed Ledger Consensus", Rank: "B [2021]", Acronym: "GWDLC"},
	})

	// 参考侧5个特征词命中4个 = 0.8，刚好过阈值
	rank, ok := src.Match("Workshop on Distributed Ledger Consensus Algorithms and Verification Methods Track", nil)
	if !ok || rank != "B [2021]" {
		t.Errorf("overlap match failed: %q, %v", rank, ok)
	}

	// 命中3/5 = 0.6，不够
	if _, ok := src.Match("Workshop Symposium About Distributed Consensus Elsewhere Entirely", nil); ok {
		t.Error("3/5 overlap should not match")
	}
}

func TestCoreAcronymMatch(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "International Conference on Cyber Conflict", Rank: "B [2023]", Acronym: "CYCON"},
	})

	rank, ok := src.Match("Something Completely Different (CYCON2013)", nil)
	if !ok || rank != "B [2023]" {
		t.Errorf("acronym match failed: %q, %v", rank, ok)
	}
}

func TestCoreAcronymAmbiguity(t *testing.T) {
	// 两个条目共享缩写：歧义，必须拒绝而不是猜
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "Conference Alpha on Topics", Rank: "A [2023]", Acronym: "ABCD"},
		{Title: "Conference Beta on Matters", Rank: "C [2023]", Acronym: "ABCD"},
	})

	tr := &Trace{}
	if rank, ok := src.Match("Unrelated Venue Name (ABCD)", tr); ok {
		t.Errorf("ambiguous acronym must not match, got %q", rank)
	}

	found := false
	for _, step := range tr.Steps {
		if step.Strategy == "acronym" && !step.Accepted && step.Reason != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a rejected acronym trace step with reason")
	}
}

func TestCoreShortAcronymRejected(t *testing.T) {
	src := testCoreSource([]model.ReferenceEntry{
		{Title: "Conference Gamma on Things", Rank: "A [2023]", Acronym: "ABC"},
	})

	// 3字符缩写永远不走缩写策略
	if rank, ok := src.Match("Unrelated Venue Name (ABC)", nil); ok {
		t.Errorf("3-char acronym must never match, got %q", rank)
	}
}

func TestTierStyle(t *testing.T) {
	testCases := []struct {
		rank   string
		weight int
	}{
		{"A* [2023]", 1},
		{"A [2021]", 2},
		{"B [2023]", 3},
		{"C [2021]", 4},
		{"Au A", 9},
		{"Nat B", 9},
		{"TBR", 9},
	}
	for _, tc := range testCases {
		_, weight := TierStyle(tc.rank)
		if weight != tc.weight {
			t.Errorf("TierStyle(%q) weight = %d, want %d", tc.rank, weight, tc.weight)
		}
	}
}
