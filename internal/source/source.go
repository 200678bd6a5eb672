// Package source 排名source：每个source = 一张参考表 + 一组匹配策略
package source

import (
	"strings"

	"venue-rank-go/internal/model"
)

// Matcher 匹配函数：输入原始标题，命中返回rank标签
// 纯函数，参考表在构造时闭包捕获，构造后只读
type Matcher func(title string, tr *Trace) (string, bool)

// StyleFunc 从rank标签推导显示颜色和排序权重
type StyleFunc func(rank string) (color string, weight int)

// RankingSource 一个排名source，注册后不再修改
type RankingSource struct {
	ID       string
	Name     string
	PrefKey  string // 为空表示总是启用
	Priority int    // 越小越先检查
	Match    Matcher
	Style    StyleFunc
}

// Result 用rank标签构造MatchResult
func (s *RankingSource) Result(rank string) model.MatchResult {
	color, weight := "", 99
	if s.Style != nil {
		color, weight = s.Style(rank)
	}
	return model.MatchResult{
		SourceID:   s.ID,
		SourceName: s.Name,
		Rank:       rank,
		Color:      color,
		SortWeight: weight,
	}
}

// Trace 调试追踪收集器，nil时所有方法为空操作
type Trace struct {
	Steps []model.MatchTrace
}

// Add 记录一次策略尝试
func (t *Trace) Add(step model.MatchTrace) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, step)
}

// significantWords 取长度大于3的词（已规范化的输入），去重
// 重叠比例的分母用的就是这个列表的长度，重复词不能重复计数
func significantWords(s string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if len(w) > 3 && !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}

// overlapCount 两组词的交集大小，输入都已去重
func overlapCount(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}
	count := 0
	for _, w := range b {
		if set[w] {
			count++
		}
	}
	return count
}

// stripCommaSuffix 去掉参考标题结尾的", xxx"从句
func stripCommaSuffix(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		return s[:i]
	}
	return s
}
