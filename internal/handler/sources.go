package handler

import (
	"encoding/json"
	"net/http"

	"venue-rank-go/internal/service"
	"venue-rank-go/internal/source"
)

// SourceInfo source列表响应的单项
type SourceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
	Fixed    bool   `json:"fixed"` // 没有开关的source（始终启用）
}

// SourceHandler source列表与开关处理器
type SourceHandler struct {
	registry *source.Registry
	prefs    *source.Prefs
	resolver *service.Resolver
}

// NewSourceHandler 创建处理器
func NewSourceHandler(registry *source.Registry, prefs *source.Prefs, resolver *service.Resolver) *SourceHandler {
	return &SourceHandler{registry: registry, prefs: prefs, resolver: resolver}
}

// List 列出全部source及启用状态
// GET /api/sources
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	var infos []SourceInfo
	for _, id := range h.registry.All() {
		src := h.registry.Get(id)
		if src == nil {
			continue
		}
		enabled := true
		if src.PrefKey != "" {
			enabled = h.prefs.Enabled(src.PrefKey)
		}
		infos = append(infos, SourceInfo{
			ID:       src.ID,
			Name:     src.Name,
			Priority: src.Priority,
			Enabled:  enabled,
			Fixed:    src.PrefKey == "",
		})
	}
	writeJSON(w, infos)
}

// Toggle 开关一个source并全量清缓存
// POST /api/sources/toggle
// Body: {"id": "sjr", "enabled": false}
func (h *SourceHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	src := h.registry.Get(req.ID)
	if src == nil {
		http.Error(w, "unknown source id", http.StatusNotFound)
		return
	}
	if src.PrefKey == "" {
		http.Error(w, "source cannot be toggled", http.StatusBadRequest)
		return
	}

	h.prefs.Set(src.PrefKey, req.Enabled)
	h.resolver.InvalidateAll()
	writeJSON(w, map[string]string{"status": "ok"})
}
