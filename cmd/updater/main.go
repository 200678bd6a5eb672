package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"venue-rank-go/internal/fetcher"
	"venue-rank-go/internal/model"
	"venue-rank-go/internal/source"
)

// updater 把上游的排名数据转成服务用的参考表JSON
// 对应三份CSV提取脚本，外加直接抓CORE门户的模式
func main() {
	sjrCSV := flag.String("sjr", "", "path to SJR journal CSV (semicolon separated)")
	coreCSV := flag.String("core", "", "path to full CORE CSV (no header)")
	absCSV := flag.String("abs", "", "path to ABS journal CSV")
	portal := flag.Bool("portal", false, "scrape the CORE portal instead of reading a CSV")
	portalSource := flag.String("portal-source", "CORE2023", "CORE portal ranking edition")
	outDir := flag.String("out", "data", "output directory for the JSON tables")
	flag.Parse()

	if *sjrCSV == "" && *coreCSV == "" && *absCSV == "" && !*portal {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if *sjrCSV != "" {
		entries, err := source.ParseSJRCSV(*sjrCSV)
		if err != nil {
			log.Fatalf("SJR: %v", err)
		}
		writeTable(*outDir, "sjr", entries)
	}

	if *portal {
		f := fetcher.NewCorePortalFetcher(*portalSource)
		entries, err := f.FetchAll(context.Background())
		if err != nil {
			log.Fatalf("CORE portal: %v", err)
		}
		writeTable(*outDir, "core", entries)
	} else if *coreCSV != "" {
		entries, err := source.ParseCoreCSV(*coreCSV)
		if err != nil {
			log.Fatalf("CORE: %v", err)
		}
		writeTable(*outDir, "core", entries)
	}

	if *absCSV != "" {
		entries, err := source.ParseABSCSV(*absCSV)
		if err != nil {
			log.Fatalf("ABS: %v", err)
		}
		writeTable(*outDir, "abs", entries)
	}
}

// writeTable 落盘并打印分布统计和样例
func writeTable(outDir, name string, entries []model.ReferenceEntry) {
	path := filepath.Join(outDir, name+"_rankings.json")
	if err := source.SaveEntriesJSON(path, entries); err != nil {
		log.Fatalf("%s: save failed: %v", name, err)
	}

	fmt.Printf("Total %s entries extracted: %d\n", strings.ToUpper(name), len(entries))

	// 按rank首个词统计分布
	counts := make(map[string]int)
	for _, e := range entries {
		base := e.Rank
		if i := strings.IndexByte(base, ' '); i > 0 {
			base = base[:i]
		}
		counts[base]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("\nRanking distribution:")
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}

	fmt.Println("\nExamples:")
	for i, e := range entries {
		if i >= 5 {
			break
		}
		fmt.Printf("  %s: %s\n", e.Title, e.Rank)
	}

	fmt.Printf("\nSaved to %s\n\n", path)
}
