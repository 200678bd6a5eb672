// Package cache 按条目缓存解析结果
// 只存结构化的ResolvedRanking，不存渲染后的显示文本：格式偏好变化不需要清缓存
// 失效由调用方驱动（标题编辑、source开关、覆盖变更），缓存自己不感知事件
package cache

import (
	"sync"

	"venue-rank-go/internal/model"
)

// ResultCache 解析结果缓存，键为条目id
type ResultCache struct {
	mu sync.RWMutex
	m  map[string]*model.ResolvedRanking
}

// NewResultCache 创建缓存
func NewResultCache() *ResultCache {
	return &ResultCache{
		m: make(map[string]*model.ResolvedRanking),
	}
}

// Get 读取缓存
func (c *ResultCache) Get(itemID string) (*model.ResolvedRanking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[itemID]
	return r, ok
}

// Set 写入缓存
func (c *ResultCache) Set(itemID string, r *model.ResolvedRanking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[itemID] = r
}

// Invalidate 单条失效（条目标题变更时调用）
func (c *ResultCache) Invalidate(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, itemID)
}

// InvalidateAll 全部失效（source开关或覆盖批量变更时调用）
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]*model.ResolvedRanking)
}

// Len 当前缓存条数
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
