package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"venue-rank-go/internal/model"
)

// LoadEntriesJSON 从JSON文件加载参考表（updater的输出格式）
func LoadEntriesJSON(path string) ([]model.ReferenceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}
	var entries []model.ReferenceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse table file %s: %w", path, err)
	}
	return entries, nil
}

// SaveEntriesJSON 保存参考表到JSON文件
func SaveEntriesJSON(path string, entries []model.ReferenceEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseSJRCSV 解析scimagojr导出的CSV（分号分隔，SJR数值用逗号作小数点）
// SJR值解析失败的行跳过并记录，和原始提取脚本行为一致
func ParseSJRCSV(path string) ([]model.ReferenceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSJRCSV(f)
}

func parseSJRCSV(input io.Reader) ([]model.ReferenceEntry, error) {
	r := csv.NewReader(input)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read SJR header: %w", err)
	}
	titleIdx, sjrIdx, quartileIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Title":
			titleIdx = i
		case "SJR":
			sjrIdx = i
		case "SJR Best Quartile":
			quartileIdx = i
		}
	}
	if titleIdx < 0 || sjrIdx < 0 || quartileIdx < 0 {
		return nil, fmt.Errorf("SJR CSV missing expected columns, header: %v", header)
	}

	var entries []model.ReferenceEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		// EOF以外的读取错误必须上抛：半份参考表比没有表更危险
		if err != nil {
			return nil, fmt.Errorf("failed to read SJR CSV: %w", err)
		}
		if len(row) <= quartileIdx || len(row) <= sjrIdx || len(row) <= titleIdx {
			continue
		}

		title := strings.TrimSpace(strings.Trim(row[titleIdx], `"`))
		sjrValue := strings.ReplaceAll(strings.TrimSpace(row[sjrIdx]), ",", ".")
		quartile := strings.TrimSpace(row[quartileIdx])

		if _, err := strconv.ParseFloat(sjrValue, 64); err != nil {
			log.Printf("[Loader] could not convert SJR value %q for journal %q, skipping", row[sjrIdx], title)
			continue
		}
		if quartile == "" {
			quartile = "-"
		}

		entries = append(entries, model.ReferenceEntry{
			Title: title,
			Rank:  quartile + " " + sjrValue,
		})
	}
	return entries, nil
}

// ParseCoreCSV 解析full_CORE.csv（无表头）
// 列：1=标题 2=缩写 4=2023分级 5=2021分级；优先2023，缺失回退2021
// 分级标签带上版本年份，如"A* [2023]"；Australasian/National缩写为Au/Nat
func ParseCoreCSV(path string) ([]model.ReferenceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCoreCSV(f)
}

func parseCoreCSV(input io.Reader) ([]model.ReferenceEntry, error) {
	r := csv.NewReader(input)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var entries []model.ReferenceEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CORE CSV: %w", err)
		}
		if len(row) < 9 {
			log.Printf("[Loader] ignored CORE row: %v", row)
			continue
		}

		title := strings.TrimSpace(row[1])
		acronym := strings.TrimSpace(row[2])
		rank2023 := strings.TrimSpace(row[4])
		rank2021 := strings.TrimSpace(row[5])
		if title == "" {
			continue
		}

		primary, edition := rank2023, "2023"
		if primary == "" {
			primary, edition = rank2021, "2021"
		}

		var rank string
		switch {
		case primary == "A*" || primary == "A" || primary == "B" || primary == "C":
			rank = primary + " [" + edition + "]"
		case strings.HasPrefix(primary, "Australasian"):
			rank = strings.Replace(primary, "Australasian", "Au", 1)
		case strings.HasPrefix(primary, "National"):
			rank = strings.Replace(primary, "National", "Nat", 1)
		case primary == "TBR":
			rank = "TBR"
		default:
			continue
		}

		entries = append(entries, model.ReferenceEntry{
			Title:   title,
			Rank:    rank,
			Acronym: acronym,
			Year:    edition,
		})
	}
	return entries, nil
}

// ParseABSCSV 解析ABS的CSV（逗号分隔，带表头）
// 列：1=标题 2=分级
func ParseABSCSV(path string) ([]model.ReferenceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseABSCSV(f)
}

func parseABSCSV(input io.Reader) ([]model.ReferenceEntry, error) {
	r := csv.NewReader(input)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if _, err := r.Read(); err != nil { // 跳过表头
		return nil, fmt.Errorf("failed to read ABS header: %w", err)
	}

	var entries []model.ReferenceEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ABS CSV: %w", err)
		}
		if len(row) < 3 {
			continue
		}
		title := strings.TrimSpace(row[1])
		rank := strings.TrimSpace(row[2])
		if title == "" || rank == "" {
			continue
		}
		entries = append(entries, model.ReferenceEntry{Title: title, Rank: rank})
	}
	return entries, nil
}
