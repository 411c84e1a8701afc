package report

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"staffdesk/internal/analytics"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"

	"github.com/xuri/excelize/v2"
)

func sampleSnapshot() structs.AnalyticsSnapshot {
	return analytics.Calculate([]structs.Employee{
		{Department: "Engineering", Position: "Developer", Salary: 60000},
		{Department: "Engineering", Position: "Developer", Salary: 80000},
		{Department: "Sales", Position: "Manager", Salary: 110000},
	})
}

func TestBuildWorkbookSheets(t *testing.T) {
	data, err := BuildWorkbook(sampleSnapshot())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Departments", "Positions", "Salary Distribution"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, got[i], name)
		}
	}
}

func TestBuildWorkbookSummaryValues(t *testing.T) {
	data, err := BuildWorkbook(sampleSnapshot())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s, %s): %v", sheet, ref, err)
		}
		return v
	}

	if v := cell("Summary", "B2"); v != "3" {
		t.Errorf("total employees cell = %q, want 3", v)
	}
	if v := cell("Summary", "B3"); v != "2" {
		t.Errorf("total departments cell = %q, want 2", v)
	}
	if v := cell("Summary", "B4"); v != "$250,000" {
		t.Errorf("total salary cell = %q, want $250,000", v)
	}

	if v := cell("Departments", "A2"); v != "Engineering" {
		t.Errorf("first department = %q, want Engineering", v)
	}
	if v := cell("Departments", "B2"); v != "2" {
		t.Errorf("Engineering headcount = %q, want 2", v)
	}

	if v := cell("Salary Distribution", "A2"); v != "0-50k" {
		t.Errorf("first bucket = %q, want 0-50k", v)
	}
}

func TestBuildWorkbookEmptySnapshot(t *testing.T) {
	data, err := BuildWorkbook(analytics.Empty())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Summary", "B2"); v != "0" {
		t.Errorf("total employees cell = %q, want 0", v)
	}
	// all four buckets are written even when everything is zero
	if v, _ := f.GetCellValue("Salary Distribution", "A5"); v != "100k+" {
		t.Errorf("last bucket = %q, want 100k+", v)
	}
}

type stubAnalytics struct {
	report analytics.Report
	err    error
}

func (s stubAnalytics) Load(context.Context) (analytics.Report, error) {
	return s.report, s.err
}

func TestAnalyticsWorkbookFilename(t *testing.T) {
	svc := New(Params{
		Logger:    logger.New("error"),
		Analytics: stubAnalytics{report: analytics.Report{Snapshot: sampleSnapshot()}},
	})

	dl, err := svc.AnalyticsWorkbook(context.Background())
	if err != nil {
		t.Fatalf("AnalyticsWorkbook: %v", err)
	}
	if ok, _ := regexp.MatchString(`^analytics_report_\d+\.xlsx$`, dl.Filename); !ok {
		t.Errorf("filename = %q", dl.Filename)
	}
	if len(dl.Data) == 0 {
		t.Error("empty workbook payload")
	}
}

func TestAnalyticsWorkbookLoadFailure(t *testing.T) {
	svc := New(Params{
		Logger:    logger.New("error"),
		Analytics: stubAnalytics{err: errors.New("backend down")},
	})

	if _, err := svc.AnalyticsWorkbook(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
