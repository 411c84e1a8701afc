package structs

// GroupStat is a per-department or per-position rollup entry.
type GroupStat struct {
	Name       string  `json:"name"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SalaryBucket is one of four fixed half-open ranges; Max < 0 marks the
// open-ended top bucket.
type SalaryBucket struct {
	Range string  `json:"range"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// AnalyticsSnapshot is recomputed wholesale on every load, never patched.
type AnalyticsSnapshot struct {
	TotalEmployees     int64          `json:"totalEmployees"`
	TotalDepartments   int64          `json:"totalDepartments"`
	TotalSalary        float64        `json:"totalSalary"`
	AverageSalary      float64        `json:"averageSalary"`
	DepartmentStats    []GroupStat    `json:"departmentStats"`
	PositionStats      []GroupStat    `json:"positionStats"`
	SalaryDistribution []SalaryBucket `json:"salaryDistribution"`
	// RecentHires is a demo placeholder, not derived from hire dates.
	RecentHires int64 `json:"recentHires"`
}

// ChartSeries is a label/value pairing shaped for the rendering layer.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChartData carries the three prepared chart datasets alongside a snapshot.
type ChartData struct {
	Departments      ChartSeries `json:"departments"`
	DepartmentSalary ChartSeries `json:"departmentSalary"`
	TopPositions     ChartSeries `json:"topPositions"`
}

// DashboardStats is the landing-view rollup, computed independently of the
// analytics snapshot.
type DashboardStats struct {
	TotalEmployees   int64   `json:"totalEmployees"`
	TotalDepartments int64   `json:"totalDepartments"`
	TotalSalary      float64 `json:"totalSalary"`
	AvgSalary        float64 `json:"avgSalary"`
	RecentHires      int64   `json:"recentHires"`
}
