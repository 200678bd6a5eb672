package handler

import "venue-rank-go/internal/model"

// ResolveRequest 单条解析请求参数
type ResolveRequest struct {
	Title string `json:"title"`           // venue标题（原始形式）
	Debug bool   `json:"debug,omitempty"` // 是否带匹配trace
}

// BatchResolveRequest 批量解析请求参数
type BatchResolveRequest struct {
	Items []model.BibItem `json:"items"`
}

// OverrideRequest 手动覆盖设置参数
type OverrideRequest struct {
	Title string `json:"title"`
	Rank  string `json:"rank"`
}

// ToggleRequest source开关参数
type ToggleRequest struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}
