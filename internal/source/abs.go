package source

import (
	"venue-rank-go/internal/model"
	"venue-rank-go/internal/normalize"
)

// NewABSSource 创建ABS期刊分级source
// 表小且人工维护，只做大小写无关的精确匹配，不做模糊兜底（误报不可接受）
func NewABSSource(entries []model.ReferenceEntry, prefKey string, priority int) *RankingSource {
	byTitle := make(map[string]string, len(entries))
	for _, e := range entries {
		byTitle[normalize.Key(e.Title)] = e.Rank
	}

	matcher := func(title string, tr *Trace) (string, bool) {
		rank, ok := byTitle[normalize.Key(title)]
		if ok {
			tr.Add(model.MatchTrace{SourceID: "abs", Strategy: "exact", Candidate: title, Accepted: true})
			return rank, true
		}
		tr.Add(model.MatchTrace{SourceID: "abs", Strategy: "exact", Reason: "no exact match"})
		return "", false
	}

	return &RankingSource{
		ID:       "abs",
		Name:     "ABS",
		PrefKey:  prefKey,
		Priority: priority,
		Match:    matcher,
		Style:    ABSStyle,
	}
}

// ABSStyle 4*..1的颜色和排序权重
func ABSStyle(rank string) (string, int) {
	switch rank {
	case "4*":
		return "#1a9850", 1
	case "4":
		return "#91cf60", 2
	case "3":
		return "#fdae61", 3
	case "2":
		return "#d73027", 4
	case "1":
		return "#d73027", 5
	}
	return "", 99
}
