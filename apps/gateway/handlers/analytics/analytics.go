package analytics

import (
	"net/http"

	analyticssvc "staffdesk/internal/analytics"
	"staffdesk/internal/dashboard"
	"staffdesk/internal/responses"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/reply"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Handler interface {
		GetAnalytics(c *gin.Context)
		GetDashboard(c *gin.Context)
	}

	Params struct {
		fx.In
		Logger    logger.Logger
		Analytics analyticssvc.Service
		Dashboard dashboard.Service
	}

	handler struct {
		logger    logger.Logger
		analytics analyticssvc.Service
		dashboard dashboard.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger:    p.Logger,
		analytics: p.Analytics,
		dashboard: p.Dashboard,
	}
}

func (h *handler) GetAnalytics(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	rep, err := h.analytics.Load(ctx)
	if err != nil {
		h.logger.Error(ctx, " err on h.analytics.Load", zap.Error(err))
		// the empty shape still renders, so return it alongside the failure
		response = responses.InternalErr
		response.Payload = rep
		return
	}

	response = responses.Success
	response.Payload = rep
}

func (h *handler) GetDashboard(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)
	defer reply.Json(c.Writer, http.StatusOK, &response)

	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		h.logger.Error(ctx, " err on h.dashboard.Stats", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = stats
}
