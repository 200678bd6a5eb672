package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"venue-rank-go/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSJRCSV(t *testing.T) {
	csv := "Rank;Sourceid;Title;Type;Issn;SJR;SJR Best Quartile;H index\n" +
		"1;28773;Ca-A Cancer Journal for Clinicians;journal;15424863;145,004;Q1;223\n" +
		"2;19434;Nature;journal;14764687;18,509;Q1;1331\n" +
		"3;12345;Broken Journal;journal;00000000;;Q2;10\n" +
		"4;54321;No Quartile Journal;journal;11111111;0,101;;5\n"

	entries, err := ParseSJRCSV(writeTemp(t, "sjr.csv", csv))
	if err != nil {
		t.Fatal(err)
	}

	// SJR值为空的行被跳过
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), entries)
	}
	if entries[1].Title != "Nature" || entries[1].Rank != "Q1 18.509" {
		t.Errorf("unexpected Nature entry: %+v", entries[1])
	}
	// 分区缺失补"-"
	if entries[2].Rank != "- 0.101" {
		t.Errorf("missing quartile should become -: %+v", entries[2])
	}
	fmt.Printf("parsed %d SJR entries\n", len(entries))
}

func TestParseCoreCSV(t *testing.T) {
	csv := `1,International Conference on Machine Learning,ICML,CORE2023,A*,A*,,,x
2,Workshop on Obscure Topics,WOT,CORE2023,,B,,,x
3,Australasian Computing Education Conference,ACE,CORE2023,Australasian A,,,,x
4,National Conference of Somewhere,NCS,CORE2023,National B,,,,x
5,Brand New Conference,BNC,CORE2023,TBR,,,,x
6,Unranked Conference,UC,CORE2023,,,,,x
short,row
`

	entries, err := ParseCoreCSV(writeTemp(t, "core.csv", csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d: %v", len(entries), entries)
	}

	want := []model.ReferenceEntry{
		{Title: "International Conference on Machine Learning", Rank: "A* [2023]", Acronym: "ICML", Year: "2023"},
		{Title: "Workshop on Obscure Topics", Rank: "B [2021]", Acronym: "WOT", Year: "2021"},
		{Title: "Australasian Computing Education Conference", Rank: "Au A", Acronym: "ACE", Year: "2023"},
		{Title: "National Conference of Somewhere", Rank: "Nat B", Acronym: "NCS", Year: "2023"},
		{Title: "Brand New Conference", Rank: "TBR", Acronym: "BNC", Year: "2023"},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestParseABSCSV(t *testing.T) {
	csv := "Field,Journal Title,AJG 2024\n" +
		"FINANCE,Journal of Finance,4*\n" +
		"ACCOUNTING,Accounting Review,4\n" +
		",Empty Rank Journal,\n"

	entries, err := ParseABSCSV(writeTemp(t, "abs.csv", csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Journal of Finance" || entries[0].Rank != "4*" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestParseCSVReadErrorNotTruncated(t *testing.T) {
	// 读到一半出错必须上抛：不能把半份表当成完整参考表返回
	readErr := errors.New("disk gone")
	input := func(prefix string) io.Reader {
		return io.MultiReader(strings.NewReader(prefix), iotest.ErrReader(readErr))
	}

	if _, err := parseCoreCSV(input("1,Conference One,CO,CORE2023,A,,,,x\n")); !errors.Is(err, readErr) {
		t.Errorf("parseCoreCSV should surface the read error, got %v", err)
	}
	if _, err := parseSJRCSV(input("Title;SJR;SJR Best Quartile\nNature;18,509;Q1\n")); !errors.Is(err, readErr) {
		t.Errorf("parseSJRCSV should surface the read error, got %v", err)
	}
	if _, err := parseABSCSV(input("Field,Journal Title,AJG 2024\nFINANCE,Journal of Finance,4*\n")); !errors.Is(err, readErr) {
		t.Errorf("parseABSCSV should surface the read error, got %v", err)
	}
}

func TestEntriesJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	in := []model.ReferenceEntry{
		{Title: "Nature", Rank: "Q1 18.509"},
		{Title: "International Conference on Machine Learning", Rank: "A* [2023]", Acronym: "ICML", Year: "2023"},
	}

	if err := SaveEntriesJSON(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := LoadEntriesJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestLoadEntriesJSONMissing(t *testing.T) {
	if _, err := LoadEntriesJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing table file")
	}
}
