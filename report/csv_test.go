package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/angas/solarsavings-go/savings"
	"github.com/angas/solarsavings-go/types"
)

func testDataset(t *testing.T) *savings.Dataset {
	t.Helper()

	noon := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	samples := []types.MeteringSample{
		{Time: noon, Consumption: 600, GridImport: 300, Generation: 300},
		{Time: noon.Add(10 * time.Minute), Consumption: 600, GridExport: 300, Generation: 900},
		// February sample without a covering band
		{Time: noon.AddDate(0, 1, 0), Consumption: 600, GridImport: 600},
	}
	bands := []types.PriceBand{
		{ValidFrom: noon, ValidTo: noon.Add(time.Hour), PurchasePrice: 2.0, SellPrice: 1.0},
	}

	d, err := savings.Enrich(samples, bands, savings.Options{})
	if err != nil {
		t.Fatalf("unexpected enrich error: %v", err)
	}
	return d
}

func TestBuildSummaryCSV(t *testing.T) {
	data, err := BuildSummaryCSV(New(testDataset(t), "DKK"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	// Header, two month rows, total row.
	if len(records) != 4 {
		t.Fatalf("expected 4 csv records, got %d", len(records))
	}

	if got := strings.Join(records[0], ","); got != strings.Join(SummaryColumns, ",") {
		t.Errorf("unexpected header: %s", got)
	}

	jan := records[1]
	if jan[0] != "2024-01" {
		t.Errorf("expected first row 2024-01, got %q", jan[0])
	}
	if jan[7] != "0.35" {
		t.Errorf("expected january savings 0.35, got %q", jan[7])
	}

	// February has no priced intervals, so the ratio columns read N/A.
	feb := records[2]
	if feb[0] != "2024-02" {
		t.Errorf("expected second row 2024-02, got %q", feb[0])
	}
	if feb[8] != "N/A" || feb[10] != "N/A" {
		t.Errorf("expected N/A price columns for february, got %q and %q", feb[8], feb[10])
	}
	if feb[11] != "1" {
		t.Errorf("expected 1 missing price, got %q", feb[11])
	}

	total := records[3]
	if total[0] != "total" {
		t.Errorf("expected last row label total, got %q", total[0])
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, New(testDataset(t), "DKK")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Month: 2024-01",
		"Month: 2024-02",
		"TOTAL",
		"SAVINGS SOURCES",
		"1 records missing price data",
		"N/A",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\noutput:\n%s", want, out)
		}
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(t.TempDir(), New(testDataset(t), "DKK"), "docx")
	if err == nil || !strings.Contains(err.Error(), "docx") {
		t.Errorf("expected unknown format error naming docx, got %v", err)
	}
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	files, err := Export(dir, New(testDataset(t), "DKK"), "csv", "xlsx", "pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	for _, f := range files {
		if !strings.HasPrefix(f, dir) {
			t.Errorf("expected file under %s, got %s", dir, f)
		}
	}
}
