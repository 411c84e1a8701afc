package middleware

import (
	"net/http"

	"staffdesk/internal/responses"
	"staffdesk/internal/session"
	"staffdesk/internal/structs"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/reply"
	"staffdesk/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var (
	Module = fx.Provide(NewMiddleware)
)

type (
	Middleware interface {
		Ctx() gin.HandlerFunc
		CheckAuth() gin.HandlerFunc
	}

	Params struct {
		fx.In

		Logger  logger.Logger
		Session session.Store
	}

	mw struct {
		logger  logger.Logger
		session session.Store
	}
)

func NewMiddleware(params Params) Middleware {
	return &mw{
		logger:  params.Logger,
		session: params.Session,
	}
}

// Ctx stamps every request with a log ID and a ksuid request ID.
func (m *mw) Ctx() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := m.logger.Context(c.Request.Context())

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = utils.GenKSUID()
		}
		ctx = logger.WithRequestID(ctx, requestID)

		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CheckAuth only gates on a live session. Real authorization lives in the
// backend; a stale token simply fails there.
func (m *mw) CheckAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.session.IsLoggedIn(c.Request.Context()) {
			var response structs.Response
			response = responses.Unauthorized
			reply.Json(c.Writer, http.StatusOK, &response)
			c.Abort()
			return
		}
		c.Next()
	}
}
