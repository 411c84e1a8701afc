package dashboard

import (
	"context"
	"errors"
	"testing"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
)

type stubEMS struct {
	emsapi.Service

	resp structs.PagedResult
	err  error
}

func (s stubEMS) SearchEmployees(context.Context, int64, int64, structs.SearchCriteria) (structs.PagedResult, error) {
	return s.resp, s.err
}

func newService(ems emsapi.Service) *service {
	return &service{logger: logger.New("error"), ems: ems, snapshotSize: 1000}
}

func TestStatsUsesReportedTotal(t *testing.T) {
	svc := newService(stubEMS{resp: structs.PagedResult{
		Content: []structs.Employee{
			{Department: "Engineering", Salary: 60000},
			{Department: "Sales", Salary: 40000},
		},
		// total reported by the backend, larger than the fetched page
		TotalElements: 1500,
	}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalEmployees != 1500 {
		t.Errorf("totalEmployees = %d, want the reported 1500", stats.TotalEmployees)
	}
	if stats.TotalSalary != 100000 {
		t.Errorf("totalSalary = %v, want 100000", stats.TotalSalary)
	}
	if stats.AvgSalary != 50000 {
		t.Errorf("avgSalary = %v, want 50000", stats.AvgSalary)
	}
	if stats.RecentHires < 2 || stats.RecentHires > 6 {
		t.Errorf("recentHires = %d, want within [2,6]", stats.RecentHires)
	}
}

// The dashboard's department count is raw set cardinality: an empty
// department string still counts as one distinct value.
func TestStatsDepartmentCardinalityIncludesEmpty(t *testing.T) {
	svc := newService(stubEMS{resp: structs.PagedResult{
		Content: []structs.Employee{
			{Department: "Engineering"},
			{Department: ""},
			{Department: "Engineering"},
			{Department: "Sales"},
		},
	}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalDepartments != 3 {
		t.Errorf("totalDepartments = %d, want 3 (empty counts)", stats.TotalDepartments)
	}
}

func TestStatsEmptyPage(t *testing.T) {
	svc := newService(stubEMS{resp: structs.PagedResult{}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.AvgSalary != 0 || stats.TotalSalary != 0 {
		t.Errorf("salary stats = %v/%v, want zero", stats.TotalSalary, stats.AvgSalary)
	}
}

func TestStatsFetchFailure(t *testing.T) {
	svc := newService(stubEMS{err: errors.New("backend down")})

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
