package service

import (
	"context"
	"log"
	"strings"

	"venue-rank-go/internal/cache"
	"venue-rank-go/internal/model"
	"venue-rank-go/internal/override"
	"venue-rank-go/internal/source"
	"venue-rank-go/internal/sse"
)

// Resolver 排名解析引擎：覆盖检查 → 逐source匹配 → 聚合
type Resolver struct {
	registry  *source.Registry
	overrides *override.Store
	cache     *cache.ResultCache
}

// NewResolver 创建解析引擎（依赖显式注入，测试可以用独立实例）
func NewResolver(registry *source.Registry, overrides *override.Store, c *cache.ResultCache) *Resolver {
	return &Resolver{
		registry:  registry,
		overrides: overrides,
		cache:     c,
	}
}

// Resolve 解析一个venue标题
// 1. 空标题直接返回空结果，不查任何source
// 2. 覆盖命中则作为全部结果返回（覆盖是排他的，不和自动匹配合并）
// 3. 否则每个启用的source都查一遍：期刊可以同时有分区和分级，
//    source之间相互独立，不因为一个命中就跳过其余的
// 结果按source的priority升序排列
func (r *Resolver) Resolve(title string, debug bool) *model.ResolvedRanking {
	res := &model.ResolvedRanking{}
	if strings.TrimSpace(title) == "" {
		return res
	}

	if rank, ok := r.overrides.Get(title); ok {
		res.Override = rank
		return res
	}

	var tr *source.Trace
	if debug {
		tr = &source.Trace{}
	}

	for _, src := range r.registry.Enabled() {
		rank, ok := r.matchSource(src, title, tr)
		if ok {
			res.Matches = append(res.Matches, src.Result(rank))
		}
	}

	if tr != nil {
		res.Trace = tr.Steps
	}
	return res
}

// matchSource 带panic隔离地调用单个source的matcher
// 一个source崩了只算它自己没命中，不影响其余source
func (r *Resolver) matchSource(src *source.RankingSource, title string, tr *source.Trace) (rank string, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[Resolver] source %q matcher panicked for title %q: %v", src.ID, title, p)
			rank, ok = "", false
		}
	}()
	return src.Match(title, tr)
}

// ResolveItem 带缓存地解析一个条目（非调试路径，缓存只存结构化结果）
func (r *Resolver) ResolveItem(it *model.BibItem) *model.ResolvedRanking {
	if !it.IsEligible() {
		return &model.ResolvedRanking{}
	}
	if cached, ok := r.cache.Get(it.ID); ok {
		return cached
	}

	res := r.Resolve(it.ExtractTitle(), false)
	r.cache.Set(it.ID, res)
	return res
}

// InvalidateItem 条目标题变更时由宿主调用
func (r *Resolver) InvalidateItem(itemID string) {
	r.cache.Invalidate(itemID)
}

// InvalidateAll source开关或覆盖批量变更时由宿主调用
func (r *Resolver) InvalidateAll() {
	r.cache.InvalidateAll()
}

// BatchResolve 批量解析，经由缓存，进度走SSE
func (r *Resolver) BatchResolve(ctx context.Context, items []model.BibItem, w *sse.Writer) error {
	log.Printf("[Resolver] batch resolve started, %d items", len(items))
	w.Start(len(items))

	results := make(map[string]*model.ResolvedRanking, len(items))
	for i := range items {
		select {
		case <-ctx.Done():
			log.Printf("[Resolver] batch resolve canceled after %d items", len(results))
			w.SendGlobalError("resolution canceled")
			return ctx.Err()
		default:
		}

		it := &items[i]
		res := r.ResolveItem(it)
		results[it.ID] = res
		w.AddResult(it.ID, res)
	}

	summary := Summarize(results)
	log.Printf("[Resolver] batch resolve completed: %d total, %d overridden, %d unmatched",
		summary.Total, summary.Overridden, summary.Unmatched)
	w.Done(summary)
	return nil
}

// Summarize 统计批量解析结果（原始界面里的"未找到"统计）
func Summarize(results map[string]*model.ResolvedRanking) *model.BatchSummary {
	summary := &model.BatchSummary{
		Total:    len(results),
		BySource: make(map[string]int),
	}
	for _, res := range results {
		switch {
		case res.Override != "":
			summary.Overridden++
		case len(res.Matches) == 0:
			summary.Unmatched++
		default:
			for _, m := range res.Matches {
				summary.BySource[m.SourceID]++
			}
		}
	}
	return summary
}
