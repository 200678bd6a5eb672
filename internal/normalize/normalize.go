// Package normalize 标题规范化：所有source的比较都必须先经过这里
package normalize

import (
	"regexp"
	"strings"
)

var (
	// telecommunication/telecommunications 以及常见的少一个m的错拼
	telecomRe  = regexp.MustCompile(`telecomm?unications?`)
	nonAlnumRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacesRe   = regexp.MustCompile(`\s+`)

	procRe       = regexp.MustCompile(`(?i)^proceedings of the `)
	acroPrefixRe = regexp.MustCompile(`^[A-Z][A-Z0-9]+\s+\d{4}\s*-\s*`)
	yearRe       = regexp.MustCompile(`\b\d{4}\b`)
	ordinalRe    = regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+(?:annual\s+)?`)
	annualRe     = regexp.MustCompile(`(?i)\bannual\s+`)
	acroSuffixRe = regexp.MustCompile(`\s*-\s*[A-Z][A-Z0-9]*\s*'\d{2,4}\s*$`)

	parenRe        = regexp.MustCompile(`\(([A-Z0-9][A-Z0-9 \-_/&.]*)\)`)
	acroYearTailRe = regexp.MustCompile(`\d{4}$`)
	acroSepRe      = regexp.MustCompile(`[^A-Z0-9]`)
)

// Title 标题规范化，变换顺序不可调整：
// 小写 → &→and → 电信同义词折叠 → 非字母数字转空格 → 空格折叠+去首尾
func Title(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "and")
	s = telecomRe.ReplaceAllString(s, "communications")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanConferenceTitle 去掉会议论文集标题里干扰匹配的噪音（在规范化之前调用）
// 处理：开头的"Proceedings of the "、"ACRO 2013 - "前缀、4位年份、
// "15th Annual "之类的序数词、独立的"Annual "、结尾的" - ACRO '13"后缀
func CleanConferenceTitle(s string) string {
	s = acroSuffixRe.ReplaceAllString(s, "")
	s = procRe.ReplaceAllString(s, "")
	s = acroPrefixRe.ReplaceAllString(s, "")
	s = ordinalRe.ReplaceAllString(s, "")
	s = annualRe.ReplaceAllString(s, "")
	s = yearRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractAcronym 从原始标题（未规范化）提取第一个括号内的大写缩写
// 内部分隔符会被去掉，结尾的4位年份会被去掉，如 "(CYCON2013)" → "CYCON"
// 没有则返回空串
func ExtractAcronym(s string) string {
	m := parenRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	acro := acroSepRe.ReplaceAllString(m[1], "")
	acro = acroYearTailRe.ReplaceAllString(acro, "")
	return acro
}

// Key 覆盖条目的键规范化：只做小写+去首尾空白
// 覆盖的标题通常是从条目里原样复制的，不做标点折叠
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
