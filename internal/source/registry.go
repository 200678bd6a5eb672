package source

import (
	"log"
	"sort"
	"sync"
)

// PrefReader 读取某个source的启用开关（启用状态不存在source上，按调用时读取）
type PrefReader interface {
	Enabled(key string) bool
}

// Registry source注册表，启动时注册一次
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sources map[string]*RankingSource
	prefs   PrefReader
}

// NewRegistry 创建注册表
func NewRegistry(prefs PrefReader) *Registry {
	return &Registry{
		sources: make(map[string]*RankingSource),
		prefs:   prefs,
	}
}

// Register 注册source
// 重复id按后注册覆盖处理（记录日志，参见DESIGN.md的决策）
func (r *Registry) Register(s *RankingSource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[s.ID]; exists {
		log.Printf("[Registry] duplicate source id %q, overwriting", s.ID)
	} else {
		r.order = append(r.order, s.ID)
	}
	r.sources[s.ID] = s
}

// Enabled 返回当前启用的source，按priority升序
// 没有PrefKey的source视为总是启用
func (r *Registry) Enabled() []*RankingSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var enabled []*RankingSource
	for _, id := range r.order {
		s := r.sources[id]
		if s.PrefKey != "" && r.prefs != nil && !r.prefs.Enabled(s.PrefKey) {
			continue
		}
		enabled = append(enabled, s)
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	return enabled
}

// All 返回所有已注册的source id（注册顺序）
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Get 按id取source
func (r *Registry) Get(id string) *RankingSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[id]
}

// Prefs 启用开关存储，默认全部启用
type Prefs struct {
	mu sync.RWMutex
	m  map[string]bool
}

// NewPrefs 用初始开关创建
func NewPrefs(initial map[string]bool) *Prefs {
	m := make(map[string]bool, len(initial))
	for k, v := range initial {
		m[k] = v
	}
	return &Prefs{m: m}
}

// Enabled 读取开关，未设置视为启用
func (p *Prefs) Enabled(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.m[key]
	if !ok {
		return true
	}
	return v
}

// Set 更新开关（调用方负责让缓存失效）
func (p *Prefs) Set(key string, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = on
}
