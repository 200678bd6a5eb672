package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"venue-rank-go/internal/model"
)

// Writer 批量解析进度的SSE写入器
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     *model.BatchState
	stopHeart chan struct{}
}

// NewWriter 创建SSE写入器
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writer := &Writer{
		w:       w,
		flusher: flusher,
		state: &model.BatchState{
			Status:        "resolving",
			CurrentAction: "Initializing...",
			Results:       make(map[string]*model.ResolvedRanking),
		},
		stopHeart: make(chan struct{}),
	}

	// 启动心跳
	go writer.heartbeat()

	return writer, nil
}

// heartbeat 定期发送心跳保持连接
func (s *Writer) heartbeat() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			heartbeat := map[string]interface{}{
				"status":         "heartbeat",
				"overall":        s.state.Overall,
				"current_action": s.state.CurrentAction,
			}
			data, _ := json.Marshal(heartbeat)
			fmt.Fprintf(s.w, "data: %s\n\n", data)
			s.flusher.Flush()
			s.mu.Unlock()
		case <-s.stopHeart:
			return
		}
	}
}

// StopHeartbeat 停止心跳
func (s *Writer) StopHeartbeat() {
	close(s.stopHeart)
}

func (s *Writer) send() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.w, "data: %s\n\n", data)
	if err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Start 设置总条数并立即发送（让前端秒显示进度条）
func (s *Writer) Start(total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Total = total
	s.state.CurrentAction = "Resolving rankings..."
	return s.send()
}

// AddResult 追加一条解析结果并发送
// 进度只增不减
func (s *Writer) AddResult(itemID string, res *model.ResolvedRanking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Results[itemID] = res
	s.state.Processed++
	if s.state.Total > 0 {
		newOverall := s.state.Processed * 100 / s.state.Total
		if newOverall > s.state.Overall {
			s.state.Overall = newOverall
		}
	}
	return s.send()
}

// SendGlobalError 发送全局错误
func (s *Writer) SendGlobalError(errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "error"
	s.state.CurrentAction = "Resolution failed"
	s.state.Error = errMsg
	return s.send()
}

// Done 全部完成，附带统计
func (s *Writer) Done(summary *model.BatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "completed"
	s.state.Overall = 100
	s.state.CurrentAction = "Resolution completed"
	s.state.Summary = summary
	return s.send()
}
