package model

// ReferenceEntry 参考表的一行：某个排名体系中的一个venue
type ReferenceEntry struct {
	Title   string `json:"title"`
	Rank    string `json:"rank"`
	Acronym string `json:"acronym,omitempty"`
	Year    string `json:"year,omitempty"`
}

// MatchResult 单个source的匹配结果
type MatchResult struct {
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name"`
	Rank       string `json:"rank"`
	Color      string `json:"color,omitempty"`
	SortWeight int    `json:"sort_weight"`
}

// ResolvedRanking 一次解析的完整结果
// Override非空时表示用户覆盖，Matches必为空（覆盖是排他的）
type ResolvedRanking struct {
	Override string        `json:"override,omitempty"`
	Matches  []MatchResult `json:"matches,omitempty"`
	Trace    []MatchTrace  `json:"trace,omitempty"`
}

// Empty 是否没有任何结果
func (r *ResolvedRanking) Empty() bool {
	return r.Override == "" && len(r.Matches) == 0
}

// MatchTrace 调试模式下记录的单次策略尝试
type MatchTrace struct {
	SourceID   string  `json:"source_id"`
	Strategy   string  `json:"strategy"`
	Candidate  string  `json:"candidate,omitempty"`
	RefRatio   float64 `json:"ref_ratio,omitempty"`
	InputRatio float64 `json:"input_ratio,omitempty"`
	Accepted   bool    `json:"accepted"`
	Reason     string  `json:"reason,omitempty"`
}

// BatchSummary 批量解析后的统计信息
type BatchSummary struct {
	Total      int            `json:"total"`
	Overridden int            `json:"overridden"`
	Unmatched  int            `json:"unmatched"`
	BySource   map[string]int `json:"by_source"`
}

// BatchState 批量解析的完整状态 - SSE每次输出这个完整结构
type BatchState struct {
	Status        string                      `json:"status"` // "resolving" | "completed" | "error"
	Overall       int                         `json:"overall"`
	CurrentAction string                      `json:"current_action"`
	Processed     int                         `json:"processed"`
	Total         int                         `json:"total"`
	Results       map[string]*ResolvedRanking `json:"results,omitempty"`
	Summary       *BatchSummary               `json:"summary,omitempty"`
	Error         string                      `json:"error,omitempty"`
}
