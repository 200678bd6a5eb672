package model

import "strings"

// BibItem 宿主传入的文献条目（只保留解析需要的字段）
type BibItem struct {
	ID               string `json:"id"`
	Type             string `json:"type"` // journalArticle / conferencePaper / attachment / note ...
	PublicationTitle string `json:"publication_title,omitempty"`
	ConferenceName   string `json:"conference_name,omitempty"`
	ProceedingsTitle string `json:"proceedings_title,omitempty"`
	Series           string `json:"series,omitempty"`
}

// ExtractTitle 按优先级取出第一个非空的venue标题
// 顺序：期刊名 → 会议名 → 论文集名 → 丛书名
func (it *BibItem) ExtractTitle() string {
	for _, field := range []string{
		it.PublicationTitle,
		it.ConferenceName,
		it.ProceedingsTitle,
		it.Series,
	} {
		if strings.TrimSpace(field) != "" {
			return field
		}
	}
	return ""
}

// IsEligible 判断条目类型是否需要解析（排除附件、笔记等）
func (it *BibItem) IsEligible() bool {
	switch it.Type {
	case "attachment", "note", "annotation":
		return false
	}
	return true
}
