package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"venue-rank-go/internal/service"
	"venue-rank-go/internal/sse"
)

// ResolveHandler 排名解析HTTP处理器
type ResolveHandler struct {
	resolver *service.Resolver
}

// NewResolveHandler 创建处理器
func NewResolveHandler(resolver *service.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

// Resolve 处理单条解析请求
// POST /api/resolve
// Body: {"title": "xxx", "debug": false}
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest

	// 解析JSON请求体
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res := h.resolver.Resolve(req.Title, req.Debug)
	writeJSON(w, res)
}

// ResolveItemsSSE 处理批量解析请求，进度走SSE
// POST /api/resolve/items
// Body: {"items": [{...}, ...]}
func (h *ResolveHandler) ResolveItemsSSE(w http.ResponseWriter, r *http.Request) {
	var req BatchResolveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// 创建SSE writer
	writer, err := sse.NewWriter(w)
	if err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	defer writer.StopHeartbeat()

	log.Printf("Starting SSE batch resolve, %d items", len(req.Items))

	if err := h.resolver.BatchResolve(r.Context(), req.Items, writer); err != nil {
		log.Printf("Batch resolve error: %v", err)
	}

	log.Printf("SSE batch resolve completed")
}

// Health 健康检查
func (h *ResolveHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeJSON 统一的JSON响应
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handler] write response failed: %v", err)
	}
}
