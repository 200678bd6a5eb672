package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"venue-rank-go/internal/override"
	"venue-rank-go/internal/service"
)

// OverrideHandler 手动覆盖CRUD处理器
// 覆盖变更后全量清缓存：一个标题可能对应多个条目，逐条失效不划算
type OverrideHandler struct {
	overrides *override.Store
	resolver  *service.Resolver
}

// NewOverrideHandler 创建处理器
func NewOverrideHandler(overrides *override.Store, resolver *service.Resolver) *OverrideHandler {
	return &OverrideHandler{overrides: overrides, resolver: resolver}
}

// Handle 按方法分发
// GET    /api/overrides          列出全部覆盖
// PUT    /api/overrides          设置覆盖 {"title": "xxx", "rank": "yyy"}
// DELETE /api/overrides?title=x  删除一条；不带title则清空全部
func (h *OverrideHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.set(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *OverrideHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.overrides.All())
}

func (h *OverrideHandler) set(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Rank == "" {
		http.Error(w, "title and rank are required", http.StatusBadRequest)
		return
	}

	if err := h.overrides.Set(req.Title, req.Rank); err != nil {
		log.Printf("[Override] persist failed for %q: %v", req.Title, err)
		http.Error(w, "failed to persist override", http.StatusInternalServerError)
		return
	}

	h.resolver.InvalidateAll()
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *OverrideHandler) remove(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")

	var err error
	if title == "" {
		err = h.overrides.ClearAll()
	} else {
		err = h.overrides.Remove(title)
	}
	if err != nil {
		log.Printf("[Override] remove failed: %v", err)
		http.Error(w, "failed to persist override", http.StatusInternalServerError)
		return
	}

	h.resolver.InvalidateAll()
	writeJSON(w, map[string]string{"status": "ok"})
}
