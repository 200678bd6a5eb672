package source

import (
	"strings"

	"venue-rank-go/internal/model"
	"venue-rank-go/internal/normalize"
)

// SJR词重叠阈值：参考侧要求几乎全部特征词命中，输入侧允许多出一些词
// （如"Proceedings of ..."前缀），不对称是刻意的
const (
	sjrMinRefWords = 5
	sjrRefRatioMin = 0.85
	sjrInRatioMin  = 0.80
	sjrMinCleanLen = 10
)

type sjrEntry struct {
	entry     model.ReferenceEntry
	norm      string   // 规范化标题
	cleanNorm string   // 去掉", xxx"从句后的规范化标题
	words     []string // norm的特征词（长度>3）
}

// NewSJRSource 创建SJR期刊分区source
// 策略顺序：精确 → 清洗后精确 → 词重叠，第一个命中即返回
func NewSJRSource(entries []model.ReferenceEntry, prefKey string, priority int) *RankingSource {
	prepared := make([]sjrEntry, 0, len(entries))
	for _, e := range entries {
		norm := normalize.Title(e.Title)
		prepared = append(prepared, sjrEntry{
			entry:     e,
			norm:      norm,
			cleanNorm: normalize.Title(stripCommaSuffix(e.Title)),
			words:     significantWords(norm),
		})
	}

	return &RankingSource{
		ID:       "sjr",
		Name:     "SJR",
		PrefKey:  prefKey,
		Priority: priority,
		Match:    sjrMatcher(prepared),
		Style:    QuartileStyle,
	}
}

func sjrMatcher(prepared []sjrEntry) Matcher {
	return func(title string, tr *Trace) (string, bool) {
		n := normalize.Title(title)
		if n == "" {
			return "", false
		}

		// 策略a：精确匹配
		for i := range prepared {
			if n == prepared[i].norm {
				tr.Add(model.MatchTrace{
					SourceID: "sjr", Strategy: "exact",
					Candidate: prepared[i].entry.Title, Accepted: true,
				})
				return prepared[i].entry.Rank, true
			}
		}
		tr.Add(model.MatchTrace{SourceID: "sjr", Strategy: "exact", Reason: "no exact match"})

		// 策略b：清洗后匹配（长度>10防止短标题误命中）
		cn := normalize.Title(normalize.CleanConferenceTitle(title))
		if len(cn) > sjrMinCleanLen {
			for i := range prepared {
				if cn == prepared[i].cleanNorm {
					tr.Add(model.MatchTrace{
						SourceID: "sjr", Strategy: "cleaned",
						Candidate: prepared[i].entry.Title, Accepted: true,
					})
					return prepared[i].entry.Rank, true
				}
			}
		}
		tr.Add(model.MatchTrace{SourceID: "sjr", Strategy: "cleaned", Reason: "no cleaned match"})

		// 策略c：词重叠匹配
		inWords := significantWords(cn)
		if len(inWords) == 0 {
			tr.Add(model.MatchTrace{SourceID: "sjr", Strategy: "overlap", Reason: "no significant words"})
			return "", false
		}
		for i := range prepared {
			refWords := prepared[i].words
			if len(refWords) < sjrMinRefWords {
				continue
			}
			mc := overlapCount(refWords, inWords)
			if mc == 0 {
				continue
			}
			refRatio := float64(mc) / float64(len(refWords))
			inRatio := float64(mc) / float64(len(inWords))
			accepted := refRatio >= sjrRefRatioMin && inRatio >= sjrInRatioMin
			if accepted || refRatio >= 0.5 {
				tr.Add(model.MatchTrace{
					SourceID: "sjr", Strategy: "overlap",
					Candidate: prepared[i].entry.Title,
					RefRatio:  refRatio, InputRatio: inRatio,
					Accepted: accepted,
				})
			}
			if accepted {
				return prepared[i].entry.Rank, true
			}
		}

		return "", false
	}
}

// QuartileStyle Q1..Q4的颜色和排序权重
func QuartileStyle(rank string) (string, int) {
	quartile := rank
	if i := strings.IndexByte(rank, ' '); i > 0 {
		quartile = rank[:i]
	}
	switch quartile {
	case "Q1":
		return "#1a9850", 1
	case "Q2":
		return "#91cf60", 2
	case "Q3":
		return "#fdae61", 3
	case "Q4":
		return "#d73027", 4
	}
	return "", 99
}
