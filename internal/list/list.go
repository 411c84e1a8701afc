package list

import (
	"context"
	"fmt"
	"sync"
	"time"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const defaultPageSize = 10

type (
	Params struct {
		fx.In
		Logger logger.Logger
		EMS    emsapi.Service
	}

	// State is the controller's pagination snapshot: the loaded page plus
	// the request parameters that produced it.
	State struct {
		Page          int64                  `json:"page"`
		Size          int64                  `json:"size"`
		Criteria      structs.SearchCriteria `json:"-"`
		Content       []structs.Employee     `json:"content"`
		TotalElements int64                  `json:"totalElements"`
		TotalPages    int64                  `json:"totalPages"`
	}

	// Download is an export blob plus the timestamped filename to save it as.
	Download struct {
		Filename    string
		ContentType string
		Data        []byte
	}

	Controller interface {
		SetCriteria(criteria structs.SearchCriteria)
		Search(ctx context.Context) (State, error)
		ClearFilters(ctx context.Context) (State, error)
		ChangePage(ctx context.Context, page, size int64) (State, error)
		Delete(ctx context.Context, emp structs.Employee, confirmed bool) (State, error)
		ExportCSV(ctx context.Context) (Download, error)
		ExportExcel(ctx context.Context) (Download, error)
		State() State
	}

	controller struct {
		logger logger.Logger
		ems    emsapi.Service

		m     sync.Mutex
		state State
		busy  bool
	}
)

func New(p Params) Controller {
	return &controller{
		logger: p.Logger,
		ems:    p.EMS,
		state:  State{Size: defaultPageSize},
	}
}

func (c *controller) SetCriteria(criteria structs.SearchCriteria) {
	c.m.Lock()
	defer c.m.Unlock()
	c.state.Criteria = criteria
}

// Search resets to the first page and re-issues the query with the active
// criteria.
func (c *controller) Search(ctx context.Context) (State, error) {
	c.m.Lock()
	c.state.Page = 0
	c.m.Unlock()
	return c.load(ctx)
}

func (c *controller) ClearFilters(ctx context.Context) (State, error) {
	c.m.Lock()
	c.state.Criteria = structs.SearchCriteria{}
	c.state.Page = 0
	c.m.Unlock()
	return c.load(ctx)
}

// ChangePage updates pagination state and fetches fresh; prior pages are
// never cached.
func (c *controller) ChangePage(ctx context.Context, page, size int64) (State, error) {
	if page < 0 || size <= 0 {
		return c.State(), fmt.Errorf("%w: page must be >= 0 and size > 0", structs.ErrBadRequest)
	}

	c.m.Lock()
	c.state.Page = page
	c.state.Size = size
	c.m.Unlock()
	return c.load(ctx)
}

// load issues the paged query and overwrites state with whatever arrives.
// Concurrent loads are not cancelled; the last response to land wins.
func (c *controller) load(ctx context.Context) (State, error) {
	c.m.Lock()
	page, size, criteria := c.state.Page, c.state.Size, c.state.Criteria
	c.m.Unlock()

	resp, err := c.ems.SearchEmployees(ctx, page, size, criteria)
	if err != nil {
		c.logger.Warn(ctx, "->ems.SearchEmployees", zap.Error(err))
		return c.State(), err
	}

	c.m.Lock()
	c.state.Content = resp.Content
	c.state.TotalElements = resp.TotalElements
	c.state.TotalPages = resp.TotalPages
	snapshot := c.state
	c.m.Unlock()
	return snapshot, nil
}

// Delete requires an explicit confirmation; declining aborts with no side
// effect. On success the current page is reloaded as-is; when the deleted
// row was the last on the page the caller sees the resulting empty page.
func (c *controller) Delete(ctx context.Context, emp structs.Employee, confirmed bool) (State, error) {
	if !confirmed {
		return c.State(), structs.ErrNotConfirmed
	}
	if !c.begin() {
		return c.State(), structs.ErrBusy
	}
	defer c.end()

	if err := c.ems.DeleteEmployee(ctx, emp.Id); err != nil {
		c.logger.Warn(ctx, "->ems.DeleteEmployee", zap.Int64("id", emp.Id), zap.Error(err))
		return c.State(), err
	}

	c.logger.Info(ctx, "employee deleted", zap.Int64("id", emp.Id))
	return c.load(ctx)
}

func (c *controller) ExportCSV(ctx context.Context) (Download, error) {
	if !c.begin() {
		return Download{}, structs.ErrBusy
	}
	defer c.end()

	data, err := c.ems.ExportCSV(ctx)
	if err != nil {
		c.logger.Warn(ctx, "->ems.ExportCSV", zap.Error(err))
		return Download{}, err
	}
	return Download{
		Filename:    fmt.Sprintf("employees_%d.csv", time.Now().UnixMilli()),
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

func (c *controller) ExportExcel(ctx context.Context) (Download, error) {
	if !c.begin() {
		return Download{}, structs.ErrBusy
	}
	defer c.end()

	data, err := c.ems.ExportExcel(ctx)
	if err != nil {
		c.logger.Warn(ctx, "->ems.ExportExcel", zap.Error(err))
		return Download{}, err
	}
	return Download{
		Filename:    fmt.Sprintf("employees_%d.xlsx", time.Now().UnixMilli()),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func (c *controller) State() State {
	c.m.Lock()
	defer c.m.Unlock()
	return c.state
}

// begin/end implement the per-controller busy flag gating duplicate
// destructive submissions. The flag is always cleared so a failed action can
// be re-attempted manually.
func (c *controller) begin() bool {
	c.m.Lock()
	defer c.m.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *controller) end() {
	c.m.Lock()
	defer c.m.Unlock()
	c.busy = false
}
