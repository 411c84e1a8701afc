package analytics

import (
	"context"
	"math/rand/v2"
	"sort"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/config"
	"staffdesk/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const topPositionsLimit = 8

type (
	Params struct {
		fx.In
		Logger logger.Logger
		Config config.IConfig
		EMS    emsapi.Service
	}

	// Report bundles the computed snapshot with its chart-shaped series.
	Report struct {
		Snapshot structs.AnalyticsSnapshot `json:"snapshot"`
		Charts   structs.ChartData         `json:"charts"`
	}

	Service interface {
		Load(ctx context.Context) (Report, error)
	}

	service struct {
		logger       logger.Logger
		ems          emsapi.Service
		snapshotSize int64
	}
)

func New(p Params) Service {
	size := p.Config.GetInt64("ems.snapshot_size")
	if size <= 0 {
		size = 1000
	}
	return &service{
		logger:       p.Logger,
		ems:          p.EMS,
		snapshotSize: size,
	}
}

// Load fetches one bulk page of employees and recomputes everything from it.
// The fixed page size is a stand-in for true server-side aggregation and only
// holds while the employee count stays under it. On fetch failure the result
// is the explicit empty shape, never a mix of old and default values.
func (s *service) Load(ctx context.Context) (Report, error) {
	resp, err := s.ems.SearchEmployees(ctx, 0, s.snapshotSize, structs.SearchCriteria{})
	if err != nil {
		s.logger.Warn(ctx, "analytics snapshot fetch failed", zap.Error(err))
		return Report{Snapshot: Empty(), Charts: emptyCharts()}, err
	}

	snapshot := Calculate(resp.Content)
	s.logger.Info(ctx, "analytics recomputed",
		zap.Int64("employees", snapshot.TotalEmployees),
		zap.Int64("departments", snapshot.TotalDepartments),
	)
	return Report{
		Snapshot: snapshot,
		Charts:   PrepareCharts(resp.Content, snapshot),
	}, nil
}

// Calculate derives the full analytics snapshot from a bulk employee slice.
// Missing salaries count as 0; records with no department are skipped from
// the grouping pass entirely, so they appear in neither stats list.
func Calculate(employees []structs.Employee) structs.AnalyticsSnapshot {
	if len(employees) == 0 {
		return Empty()
	}

	snapshot := structs.AnalyticsSnapshot{
		TotalEmployees:     int64(len(employees)),
		SalaryDistribution: emptyBuckets(),
	}

	for _, emp := range employees {
		snapshot.TotalSalary += emp.Salary
	}
	snapshot.AverageSalary = snapshot.TotalSalary / float64(len(employees))

	// first-seen order, matching insertion order of the source
	var (
		deptOrder []string
		deptCount = map[string]int64{}
		posOrder  []string
		posCount  = map[string]int64{}
	)
	for _, emp := range employees {
		if emp.Department == "" {
			continue
		}
		if _, seen := deptCount[emp.Department]; !seen {
			deptOrder = append(deptOrder, emp.Department)
		}
		deptCount[emp.Department]++

		if emp.Position != "" {
			if _, seen := posCount[emp.Position]; !seen {
				posOrder = append(posOrder, emp.Position)
			}
			posCount[emp.Position]++
		}
	}

	total := float64(len(employees))
	for _, name := range deptOrder {
		snapshot.DepartmentStats = append(snapshot.DepartmentStats, structs.GroupStat{
			Name:       name,
			Count:      deptCount[name],
			Percentage: float64(deptCount[name]) / total * 100,
		})
	}
	for _, name := range posOrder {
		snapshot.PositionStats = append(snapshot.PositionStats, structs.GroupStat{
			Name:       name,
			Count:      posCount[name],
			Percentage: float64(posCount[name]) / total * 100,
		})
	}
	snapshot.TotalDepartments = int64(len(deptOrder))

	// disjoint half-open ranges, so each employee lands in exactly one
	for _, emp := range employees {
		for i := range snapshot.SalaryDistribution {
			b := &snapshot.SalaryDistribution[i]
			if emp.Salary >= b.Min && (b.Max < 0 || emp.Salary < b.Max) {
				b.Count++
				break
			}
		}
	}

	// demo placeholder, not derived from hire dates
	snapshot.RecentHires = int64(rand.IntN(5)) + 1

	return snapshot
}

// PrepareCharts shapes the snapshot for rendering: department headcounts,
// average salary per department, and the eight largest positions.
func PrepareCharts(employees []structs.Employee, snapshot structs.AnalyticsSnapshot) structs.ChartData {
	charts := emptyCharts()

	for _, dept := range snapshot.DepartmentStats {
		charts.Departments.Labels = append(charts.Departments.Labels, dept.Name)
		charts.Departments.Values = append(charts.Departments.Values, float64(dept.Count))

		charts.DepartmentSalary.Labels = append(charts.DepartmentSalary.Labels, dept.Name)
		charts.DepartmentSalary.Values = append(charts.DepartmentSalary.Values, departmentAverage(employees, dept.Name))
	}

	top := make([]structs.GroupStat, len(snapshot.PositionStats))
	copy(top, snapshot.PositionStats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topPositionsLimit {
		top = top[:topPositionsLimit]
	}
	for _, pos := range top {
		charts.TopPositions.Labels = append(charts.TopPositions.Labels, pos.Name)
		charts.TopPositions.Values = append(charts.TopPositions.Values, float64(pos.Count))
	}

	return charts
}

func departmentAverage(employees []structs.Employee, department string) float64 {
	var (
		sum   float64
		count int64
	)
	for _, emp := range employees {
		if emp.Department == department {
			sum += emp.Salary
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Empty is the all-zero snapshot the rendering layer falls back to.
func Empty() structs.AnalyticsSnapshot {
	return structs.AnalyticsSnapshot{
		DepartmentStats:    []structs.GroupStat{},
		PositionStats:      []structs.GroupStat{},
		SalaryDistribution: emptyBuckets(),
	}
}

func emptyBuckets() []structs.SalaryBucket {
	return []structs.SalaryBucket{
		{Range: "0-50k", Min: 0, Max: 50000},
		{Range: "50k-75k", Min: 50000, Max: 75000},
		{Range: "75k-100k", Min: 75000, Max: 100000},
		{Range: "100k+", Min: 100000, Max: -1},
	}
}

func emptyCharts() structs.ChartData {
	return structs.ChartData{
		Departments:      structs.ChartSeries{Labels: []string{}, Values: []float64{}},
		DepartmentSalary: structs.ChartSeries{Labels: []string{}, Values: []float64{}},
		TopPositions:     structs.ChartSeries{Labels: []string{}, Values: []float64{}},
	}
}
