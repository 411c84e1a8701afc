package export

import (
	"net/http"

	"staffdesk/internal/list"
	"staffdesk/internal/report"
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
		ExportCSV(c *gin.Context)
		ExportExcel(c *gin.Context)
		ExportAnalyticsReport(c *gin.Context)
	}

	Params struct {
		fx.In
		Logger logger.Logger
		List   list.Controller
		Report report.Service
	}

	handler struct {
		logger logger.Logger
		list   list.Controller
		report report.Service
	}
)

func New(p Params) Handler {
	return &handler{
		logger: p.Logger,
		list:   p.List,
		report: p.Report,
	}
}

func (h *handler) ExportCSV(c *gin.Context) {
	ctx := c.Request.Context()

	download, err := h.list.ExportCSV(ctx)
	if err != nil {
		h.fail(c, "csv", err)
		return
	}
	reply.Blob(c.Writer, download.ContentType, download.Filename, download.Data)
}

func (h *handler) ExportExcel(c *gin.Context) {
	ctx := c.Request.Context()

	download, err := h.list.ExportExcel(ctx)
	if err != nil {
		h.fail(c, "excel", err)
		return
	}
	reply.Blob(c.Writer, download.ContentType, download.Filename, download.Data)
}

// ExportAnalyticsReport builds the workbook locally from the analytics
// snapshot instead of passing the backend blob through.
func (h *handler) ExportAnalyticsReport(c *gin.Context) {
	ctx := c.Request.Context()

	download, err := h.report.AnalyticsWorkbook(ctx)
	if err != nil {
		h.fail(c, "analytics", err)
		return
	}
	reply.Blob(c.Writer, download.ContentType, download.Filename, download.Data)
}

// fail reports the error once and leaves retrying to the user.
func (h *handler) fail(c *gin.Context, kind string, err error) {
	h.logger.Error(c.Request.Context(), " export failed", zap.String("kind", kind), zap.Error(err))

	var response structs.Response
	response = responses.InternalErr
	reply.Json(c.Writer, http.StatusOK, &response)
}
