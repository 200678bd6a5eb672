package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"venue-rank-go/internal/model"
)

// CorePortalFetcher CORE会议排名门户抓取器
// 门户按页返回HTML表格，逐页抓取直到没有数据行
type CorePortalFetcher struct {
	httpClient *http.Client
	baseURL    string
	source     string // 排名版本，如 "CORE2023"
}

// NewCorePortalFetcher 创建抓取器
func NewCorePortalFetcher(source string) *CorePortalFetcher {
	return &CorePortalFetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://portal.core.edu.au/conf-ranks/",
		source:  source,
	}
}

// FetchAll 抓取全部页
// 单页失败直接中止：半份表比没有表更危险（会把缺的会议都判成未排名）
func (c *CorePortalFetcher) FetchAll(ctx context.Context) ([]model.ReferenceEntry, error) {
	var entries []model.ReferenceEntry

	for page := 1; ; page++ {
		pageEntries, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(pageEntries) == 0 {
			break
		}

		entries = append(entries, pageEntries...)
		log.Printf("[CorePortal] page %d: %d entries (%d total)", page, len(pageEntries), len(entries))

		// 别打太快
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("portal returned no entries for source %q", c.source)
	}
	return entries, nil
}

func (c *CorePortalFetcher) fetchPage(ctx context.Context, page int) ([]model.ReferenceEntry, error) {
	params := url.Values{}
	params.Set("search", "")
	params.Set("by", "all")
	params.Set("source", c.source)
	params.Set("sort", "atitle")
	params.Set("page", fmt.Sprintf("%d", page))

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "VenueRank/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("portal returned status %d: %s", resp.StatusCode, string(body))
	}

	return ParseCorePortalPage(resp.Body, c.source)
}

// ParseCorePortalPage 解析门户单页HTML表格
// 列: 0=Title 1=Acronym 2=Source 3=Rank，表头行没有td不会被选中
func ParseCorePortalPage(r io.Reader, source string) ([]model.ReferenceEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	year := strings.TrimPrefix(source, "CORE")

	var entries []model.ReferenceEntry
	doc.Find("table tr").Each(func(i int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}

		title := strings.TrimSpace(cells.Eq(0).Text())
		acronym := strings.TrimSpace(cells.Eq(1).Text())
		rank := strings.TrimSpace(cells.Eq(3).Text())
		if title == "" || rank == "" {
			return
		}

		entries = append(entries, model.ReferenceEntry{
			Title:   title,
			Acronym: acronym,
			Rank:    coreRankLabel(rank, year),
			Year:    year,
		})
	})

	return entries, nil
}

// coreRankLabel 把门户的原始rank转成参考表的标签格式
// 和CSV提取脚本同一套规则：主档带版本，地区档缩写，TBR原样
func coreRankLabel(rank, year string) string {
	switch rank {
	case "A*", "A", "B", "C":
		return fmt.Sprintf("%s [%s]", rank, year)
	case "TBR":
		return "TBR"
	}
	if strings.HasPrefix(rank, "Australasian") {
		return strings.Replace(rank, "Australasian", "Au", 1)
	}
	if strings.HasPrefix(rank, "National") {
		return strings.Replace(rank, "National", "Nat", 1)
	}
	return rank
}
