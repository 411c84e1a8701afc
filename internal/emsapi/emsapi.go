package emsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"staffdesk/internal/structs"
	"staffdesk/pkg/config"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/storage"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const tokenKey = "token"

type (
	Params struct {
		fx.In
		Logger  logger.Logger
		Config  config.IConfig
		Storage storage.Store
	}

	// Service wraps the EMS backend's REST surface one operation per
	// resource action. Failures are surfaced as-is: no retry, no backoff.
	Service interface {
		Login(ctx context.Context, req structs.LoginRequest) (structs.LoginResponse, error)
		SearchEmployees(ctx context.Context, page, size int64, criteria structs.SearchCriteria) (structs.PagedResult, error)
		GetEmployee(ctx context.Context, id int64) (structs.Employee, error)
		CreateEmployee(ctx context.Context, emp structs.Employee) (structs.Employee, error)
		UpdateEmployee(ctx context.Context, id int64, emp structs.Employee) (structs.Employee, error)
		DeleteEmployee(ctx context.Context, id int64) error
		Departments(ctx context.Context) ([]string, error)
		Positions(ctx context.Context) ([]string, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		DashboardStats(ctx context.Context) (map[string]interface{}, error)
		Statistics(ctx context.Context) (map[string]interface{}, error)
		ExportCSV(ctx context.Context) ([]byte, error)
		ExportExcel(ctx context.Context) ([]byte, error)
	}

	service struct {
		logger  logger.Logger
		storage storage.Store
		baseURL string
		client  *http.Client
	}
)

func New(p Params) Service {
	timeout := p.Config.GetDuration("ems.timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &service{
		logger:  p.Logger,
		storage: p.Storage,
		baseURL: p.Config.GetString("ems.base_url"),
		client:  &http.Client{Timeout: timeout},
	}
}

// StatusError carries a non-2xx backend reply so callers can relay the
// server-provided message when one exists.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ems returned status %d: %s", e.StatusCode, e.Message)
}

func (s *service) do(ctx context.Context, method, path string, query url.Values, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token, err := s.storage.Get(ctx, tokenKey); err == nil && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn(ctx, "ems returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Error(ctx, "failed to unmarshal ems response", zap.Error(err), zap.ByteString("body", raw))
		return err
	}
	return nil
}

// doBlob is do without JSON decoding, for the binary export endpoints.
func (s *service) doBlob(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token, err := s.storage.Get(ctx, tokenKey); err == nil && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn(ctx, "ems export returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, statusError(resp.StatusCode, raw)
	}
	return raw, nil
}

func statusError(status int, body []byte) error {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = string(body)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", structs.ErrNotFound, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", structs.ErrUnauthorized, msg)
	}
	return &StatusError{StatusCode: status, Message: msg}
}

func (s *service) Login(ctx context.Context, req structs.LoginRequest) (structs.LoginResponse, error) {
	var resp structs.LoginResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return structs.LoginResponse{}, err
	}
	return resp, nil
}

func (s *service) SearchEmployees(ctx context.Context, page, size int64, criteria structs.SearchCriteria) (structs.PagedResult, error) {
	if page < 0 || size <= 0 {
		return structs.PagedResult{}, fmt.Errorf("%w: page must be >= 0 and size > 0", structs.ErrBadRequest)
	}

	query := url.Values{}
	query.Set("page", strconv.FormatInt(page, 10))
	query.Set("size", strconv.FormatInt(size, 10))
	if criteria.SearchTerm != "" {
		query.Set("search", criteria.SearchTerm)
	}
	if criteria.Department != "" {
		query.Set("department", criteria.Department)
	}
	if criteria.Position != "" {
		query.Set("position", criteria.Position)
	}
	if criteria.MinSalary != 0 {
		query.Set("minSalary", strconv.FormatFloat(criteria.MinSalary, 'f', -1, 64))
	}
	if criteria.MaxSalary != 0 {
		query.Set("maxSalary", strconv.FormatFloat(criteria.MaxSalary, 'f', -1, 64))
	}

	var resp structs.PagedResult
	if err := s.do(ctx, http.MethodGet, "/api/employees", query, nil, &resp); err != nil {
		return structs.PagedResult{}, err
	}
	return resp, nil
}

func (s *service) GetEmployee(ctx context.Context, id int64) (structs.Employee, error) {
	var resp structs.Employee
	if err := s.do(ctx, http.MethodGet, "/api/employees/"+strconv.FormatInt(id, 10), nil, nil, &resp); err != nil {
		return structs.Employee{}, err
	}
	return resp, nil
}

func (s *service) CreateEmployee(ctx context.Context, emp structs.Employee) (structs.Employee, error) {
	var resp structs.Employee
	if err := s.do(ctx, http.MethodPost, "/api/employees", nil, emp, &resp); err != nil {
		return structs.Employee{}, err
	}
	return resp, nil
}

func (s *service) UpdateEmployee(ctx context.Context, id int64, emp structs.Employee) (structs.Employee, error) {
	var resp structs.Employee
	if err := s.do(ctx, http.MethodPut, "/api/employees/"+strconv.FormatInt(id, 10), nil, emp, &resp); err != nil {
		return structs.Employee{}, err
	}
	return resp, nil
}

func (s *service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/api/employees/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (s *service) Departments(ctx context.Context) ([]string, error) {
	var resp []string
	if err := s.do(ctx, http.MethodGet, "/api/employees/departments", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) Positions(ctx context.Context) ([]string, error) {
	var resp []string
	if err := s.do(ctx, http.MethodGet, "/api/employees/positions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	query := url.Values{}
	query.Set("email", email)

	var exists bool
	if err := s.do(ctx, http.MethodGet, "/api/employees/check-email", query, nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *service) DashboardStats(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := s.do(ctx, http.MethodGet, "/api/employees/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) Statistics(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := s.do(ctx, http.MethodGet, "/api/employees/statistics", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) ExportCSV(ctx context.Context) ([]byte, error) {
	return s.doBlob(ctx, "/api/export/employees/csv")
}

func (s *service) ExportExcel(ctx context.Context) ([]byte, error) {
	return s.doBlob(ctx, "/api/export/employees/excel")
}
