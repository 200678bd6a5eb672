package source

import (
	"log"
	"strings"

	"venue-rank-go/internal/model"
	"venue-rank-go/internal/normalize"
)

// CORE匹配阈值：策略顺序（子串→词重叠→缩写）和数值都是针对
// 误报长期调出来的，不要改
const (
	coreMinSubstrLen = 20
	coreMinRefWords  = 4
	coreRefRatioMin  = 0.8
	coreMinAcroLen   = 4 // 2-3字母的缩写在不同会议间冲突太多
)

type coreEntry struct {
	entry   model.ReferenceEntry
	norm    string
	words   []string
	acronym string // 大写
}

// NewCoreSource 创建CORE会议分级source
// 策略顺序：精确 → 子串 → 反向子串 → 词重叠 → 缩写（仅在前面全部落空时）
func NewCoreSource(entries []model.ReferenceEntry, prefKey string, priority int) *RankingSource {
	prepared := make([]coreEntry, 0, len(entries))
	for _, e := range entries {
		norm := normalize.Title(e.Title)
		prepared = append(prepared, coreEntry{
			entry:   e,
			norm:    norm,
			words:   significantWords(norm),
			acronym: strings.ToUpper(strings.TrimSpace(e.Acronym)),
		})
	}

	return &RankingSource{
		ID:       "core",
		Name:     "CORE",
		PrefKey:  prefKey,
		Priority: priority,
		Match:    coreMatcher(prepared),
		Style:    TierStyle,
	}
}

func coreMatcher(prepared []coreEntry) Matcher {
	return func(title string, tr *Trace) (string, bool) {
		n := normalize.Title(title)
		if n == "" {
			return "", false
		}
		// 会议论文集标题先做噪音清洗再参与比较
		cn := normalize.Title(normalize.CleanConferenceTitle(title))

		// 策略a：精确匹配（原始规范化或清洗后）
		for i := range prepared {
			if n == prepared[i].norm || cn == prepared[i].norm {
				tr.Add(model.MatchTrace{
					SourceID: "core", Strategy: "exact",
					Candidate: prepared[i].entry.Title, Accepted: true,
				})
				return prepared[i].entry.Rank, true
			}
		}
		tr.Add(model.MatchTrace{SourceID: "core", Strategy: "exact", Reason: "no exact match"})

		// 策略b：参考标题是输入的子串（长度>20防止碎片子串）
		for i := range prepared {
			if len(prepared[i].norm) > coreMinSubstrLen && strings.Contains(cn, prepared[i].norm) {
				tr.Add(model.MatchTrace{
					SourceID: "core", Strategy: "substring",
					Candidate: prepared[i].entry.Title, Accepted: true,
				})
				return prepared[i].entry.Rank, true
			}
		}

		// 策略c：输入是参考标题的子串
		if len(cn) > coreMinSubstrLen {
			for i := range prepared {
				if strings.Contains(prepared[i].norm, cn) {
					tr.Add(model.MatchTrace{
						SourceID: "core", Strategy: "reverse-substring",
						Candidate: prepared[i].entry.Title, Accepted: true,
					})
					return prepared[i].entry.Rank, true
				}
			}
		}

		// 策略d：词重叠（单向阈值，会议标题变体比期刊多，放宽到0.8）
		inWords := significantWords(cn)
		if len(inWords) > 0 {
			for i := range prepared {
				refWords := prepared[i].words
				if len(refWords) < coreMinRefWords {
					continue
				}
				mc := overlapCount(refWords, inWords)
				if mc == 0 {
					continue
				}
				refRatio := float64(mc) / float64(len(refWords))
				accepted := refRatio >= coreRefRatioMin
				if accepted || refRatio >= 0.5 {
					tr.Add(model.MatchTrace{
						SourceID: "core", Strategy: "overlap",
						Candidate: prepared[i].entry.Title,
						RefRatio:  refRatio,
						Accepted:  accepted,
					})
				}
				if accepted {
					return prepared[i].entry.Rank, true
				}
			}
		}

		// 策略e：缩写兜底
		return coreAcronymMatch(prepared, title, tr)
	}
}

// coreAcronymMatch 缩写匹配：从原始标题提取括号缩写，唯一命中才接受
// 多个候选视为歧义，记录日志后放弃，不猜
func coreAcronymMatch(prepared []coreEntry, title string, tr *Trace) (string, bool) {
	acro := normalize.ExtractAcronym(title)
	if acro == "" {
		tr.Add(model.MatchTrace{SourceID: "core", Strategy: "acronym", Reason: "no acronym in title"})
		return "", false
	}
	if len(acro) < coreMinAcroLen {
		tr.Add(model.MatchTrace{
			SourceID: "core", Strategy: "acronym",
			Candidate: acro, Reason: "acronym too short",
		})
		return "", false
	}

	var candidates []*coreEntry
	for i := range prepared {
		if prepared[i].acronym != "" && prepared[i].acronym == acro {
			candidates = append(candidates, &prepared[i])
		}
	}

	switch len(candidates) {
	case 0:
		tr.Add(model.MatchTrace{
			SourceID: "core", Strategy: "acronym",
			Candidate: acro, Reason: "no entry with this acronym",
		})
		return "", false
	case 1:
		tr.Add(model.MatchTrace{
			SourceID: "core", Strategy: "acronym",
			Candidate: candidates[0].entry.Title, Accepted: true,
		})
		return candidates[0].entry.Rank, true
	default:
		log.Printf("[CORE] ambiguous acronym %q: %d candidate entries, rejecting", acro, len(candidates))
		tr.Add(model.MatchTrace{
			SourceID: "core", Strategy: "acronym",
			Candidate: acro, Reason: "ambiguous acronym, multiple candidates",
		})
		return "", false
	}
}

// TierStyle A*..C的颜色和排序权重，Au/Nat/TBR归入灰色
func TierStyle(rank string) (string, int) {
	tier := rank
	if i := strings.IndexByte(rank, ' '); i > 0 {
		tier = rank[:i]
	}
	tier = strings.TrimSuffix(tier, ":") // "Nat: USA"风格的地区档
	switch tier {
	case "A*":
		return "#1a9850", 1
	case "A":
		return "#91cf60", 2
	case "B":
		return "#fdae61", 3
	case "C":
		return "#d73027", 4
	case "Au", "Nat", "TBR":
		return "#9e9e9e", 9
	}
	return "", 99
}
