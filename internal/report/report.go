package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"staffdesk/internal/analytics"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		Logger    logger.Logger
		Analytics analytics.Service
	}

	// Download is the finished workbook plus its timestamped filename.
	Download struct {
		Filename    string
		ContentType string
		Data        []byte
	}

	Service interface {
		AnalyticsWorkbook(ctx context.Context) (Download, error)
	}

	service struct {
		logger    logger.Logger
		analytics analytics.Service
	}
)

func New(p Params) Service {
	return &service{
		logger:    p.Logger,
		analytics: p.Analytics,
	}
}

func (s *service) AnalyticsWorkbook(ctx context.Context) (Download, error) {
	rep, err := s.analytics.Load(ctx)
	if err != nil {
		return Download{}, err
	}

	data, err := BuildWorkbook(rep.Snapshot)
	if err != nil {
		s.logger.Error(ctx, "failed to build analytics workbook", zap.Error(err))
		return Download{}, err
	}

	return Download{
		Filename:    fmt.Sprintf("analytics_report_%d.xlsx", time.Now().UnixMilli()),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

// BuildWorkbook renders a snapshot as an xlsx with a summary sheet plus one
// sheet per stats group.
func BuildWorkbook(snapshot structs.AnalyticsSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	const summary = "Summary"
	f.SetSheetName("Sheet1", summary)

	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Employees", snapshot.TotalEmployees},
		{"Total Departments", snapshot.TotalDepartments},
		{"Total Salary", currency(snapshot.TotalSalary)},
		{"Average Salary", currency(snapshot.AverageSalary)},
		{"Recent Hires (estimate)", snapshot.RecentHires},
	}
	if err := writeRows(f, summary, summaryRows, headerStyle); err != nil {
		return nil, err
	}

	deptRows := [][]interface{}{{"Department", "Employees", "Share %"}}
	for _, dept := range snapshot.DepartmentStats {
		deptRows = append(deptRows, []interface{}{dept.Name, dept.Count, round2(dept.Percentage)})
	}
	if err := addSheet(f, "Departments", deptRows, headerStyle); err != nil {
		return nil, err
	}

	posRows := [][]interface{}{{"Position", "Employees", "Share %"}}
	for _, pos := range snapshot.PositionStats {
		posRows = append(posRows, []interface{}{pos.Name, pos.Count, round2(pos.Percentage)})
	}
	if err := addSheet(f, "Positions", posRows, headerStyle); err != nil {
		return nil, err
	}

	bucketRows := [][]interface{}{{"Salary Range", "Employees"}}
	for _, bucket := range snapshot.SalaryDistribution {
		bucketRows = append(bucketRows, []interface{}{bucket.Range, bucket.Count})
	}
	if err := addSheet(f, "Salary Distribution", bucketRows, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, rows, headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}

func currency(n float64) string {
	return "$" + humanize.CommafWithDigits(n, 2)
}

func round2(n float64) float64 {
	return float64(int64(n*100+0.5)) / 100
}
