package employee

import (
	"errors"
	"net/http"

	"staffdesk/internal/emsapi"
	"staffdesk/internal/form"
	"staffdesk/internal/list"
	"staffdesk/internal/phone"
	"staffdesk/internal/responses"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/reply"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Handler interface {
		GetListEmployee(c *gin.Context)
		GetByIDEmployee(c *gin.Context)
		CreateEmployee(c *gin.Context)
		UpdateEmployee(c *gin.Context)
		DeleteEmployee(c *gin.Context)
		GetDepartments(c *gin.Context)
		GetPositions(c *gin.Context)
		GetCountryCodes(c *gin.Context)
		CheckEmail(c *gin.Context)
	}

	Params struct {
		fx.In
		Logger logger.Logger
		EMS    emsapi.Service
		List   list.Controller
		Forms  form.Factory
	}

	handler struct {
		logger logger.Logger
		ems    emsapi.Service
		list   list.Controller
		forms  form.Factory
	}
)

func New(p Params) Handler {
	return &handler{
		logger: p.Logger,
		ems:    p.EMS,
		list:   p.List,
		forms:  p.Forms,
	}
}

func (h *handler) GetListEmployee(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()

		page = cast.ToInt64(c.DefaultQuery("page", "0"))
		size = cast.ToInt64(c.DefaultQuery("size", "10"))
	)

	defer reply.Json(c.Writer, http.StatusOK, &response)

	h.list.SetCriteria(structs.SearchCriteria{
		SearchTerm: c.Query("search"),
		Department: c.Query("department"),
		Position:   c.Query("position"),
		MinSalary:  cast.ToFloat64(c.Query("minSalary")),
		MaxSalary:  cast.ToFloat64(c.Query("maxSalary")),
	})

	state, err := h.list.ChangePage(ctx, page, size)
	if err != nil {
		if errors.Is(err, structs.ErrBadRequest) {
			response = responses.BadRequest
			return
		}
		h.logger.Error(ctx, " err on h.list.ChangePage", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = gin.H{
		"page":          state.Page,
		"size":          state.Size,
		"totalElements": state.TotalElements,
		"totalPages":    state.TotalPages,
		"content":       rowViews(state.Content),
	}
}

// rowView is an employee row plus its display-formatted phone number.
type rowView struct {
	structs.Employee
	PhoneDisplay string `json:"phoneDisplay"`
}

func rowViews(employees []structs.Employee) []rowView {
	rows := make([]rowView, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, rowView{
			Employee:     emp,
			PhoneDisplay: phone.Format(emp.PhoneNumber),
		})
	}
	return rows
}

func (h *handler) GetByIDEmployee(c *gin.Context) {
	var (
		response structs.Response
		idStr    = c.Param("id")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	id := cast.ToInt64(idStr)
	respond, err := h.ems.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.ems.GetEmployee", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = respond
}

func (h *handler) CreateEmployee(c *gin.Context) {
	var (
		response structs.Response
		request  map[string]interface{}
		ctx      = c.Request.Context()
	)

	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	frm := h.forms.Create()
	response = h.submitForm(c, frm, request)
}

func (h *handler) UpdateEmployee(c *gin.Context) {
	var (
		response structs.Response
		request  map[string]interface{}
		idStr    = c.Param("id")
		ctx      = c.Request.Context()
	)

	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	existing, err := h.ems.GetEmployee(ctx, cast.ToInt64(idStr))
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			response = responses.NotFound
			return
		}
		h.logger.Error(ctx, " err on h.ems.GetEmployee", zap.Error(err))
		response = responses.InternalErr
		return
	}

	frm := h.forms.Edit(existing)
	response = h.submitForm(c, frm, request)
}

// submitForm maps the inbound field values into a form controller, submits
// it and translates the outcome to a gateway response. On validation failure
// the touched field map is returned so messages can render.
func (h *handler) submitForm(c *gin.Context, frm *form.Form, request map[string]interface{}) structs.Response {
	ctx := c.Request.Context()

	for name, value := range request {
		if err := frm.Set(name, cast.ToString(value)); err != nil {
			h.logger.Warn(ctx, " unknown form field", zap.String("field", name))
			return responses.BadRequest
		}
	}

	emp, err := frm.Submit(ctx)
	if err != nil {
		if errors.Is(err, structs.ErrValidation) {
			response := responses.ValidationFailed
			response.Payload = frm.Fields()
			return response
		}
		var statusErr *emsapi.StatusError
		if errors.As(err, &statusErr) {
			response := responses.BadRequest
			response.Description = statusErr.Message
			return response
		}
		h.logger.Error(ctx, " err on frm.Submit", zap.Error(err))
		return responses.InternalErr
	}

	response := responses.Success
	response.Payload = emp
	return response
}

func (h *handler) DeleteEmployee(c *gin.Context) {
	var (
		response  structs.Response
		idStr     = c.Param("id")
		confirmed = cast.ToBool(c.Query("confirm"))
		ctx       = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	state, err := h.list.Delete(ctx, structs.Employee{Id: cast.ToInt64(idStr)}, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, structs.ErrNotConfirmed):
			response = responses.BadRequest
			response.Description = "delete requires confirm=true"
		case errors.Is(err, structs.ErrNotFound):
			response = responses.NotFound
		case errors.Is(err, structs.ErrBusy):
			response = responses.BadRequest
			response.Description = "delete already in progress"
		default:
			h.logger.Error(ctx, " err on h.list.Delete", zap.Error(err))
			response = responses.InternalErr
		}
		return
	}

	response = responses.Success
	response.Payload = state
}

func (h *handler) GetDepartments(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	departments, err := h.ems.Departments(ctx)
	if err != nil {
		h.logger.Error(ctx, " err on h.ems.Departments", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = departments
}

func (h *handler) GetPositions(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	positions, err := h.ems.Positions(ctx)
	if err != nil {
		h.logger.Error(ctx, " err on h.ems.Positions", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = positions
}

// GetCountryCodes backs the form's calling-code dropdown.
func (h *handler) GetCountryCodes(c *gin.Context) {
	var response structs.Response
	defer reply.Json(c.Writer, http.StatusOK, &response)

	response = responses.Success
	response.Payload = phone.CountryCodes
}

func (h *handler) CheckEmail(c *gin.Context) {
	var (
		response structs.Response
		email    = c.Query("email")
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	if email == "" {
		response = responses.BadRequest
		return
	}

	exists, err := h.ems.EmailExists(ctx, email)
	if err != nil {
		h.logger.Error(ctx, " err on h.ems.EmailExists", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = gin.H{"exists": exists}
}
