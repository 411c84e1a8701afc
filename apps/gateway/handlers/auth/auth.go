package auth

import (
	"errors"
	"net/http"

	"staffdesk/internal/responses"
	"staffdesk/internal/session"
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
		Login(c *gin.Context)
		Logout(c *gin.Context)
		Me(c *gin.Context)
	}

	Params struct {
		fx.In
		Logger  logger.Logger
		Session session.Store
	}

	handler struct {
		logger  logger.Logger
		session session.Store
	}
)

func New(p Params) Handler {
	return &handler{
		logger:  p.Logger,
		session: p.Session,
	}
}

func (h *handler) Login(c *gin.Context) {
	var (
		response structs.Response
		request  structs.LoginRequest
		ctx      = c.Request.Context()
	)

	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.Warn(ctx, " error parse request", zap.Error(err))
		response = responses.BadRequest
		return
	}

	user, err := h.session.Login(ctx, request)
	if err != nil {
		if errors.Is(err, structs.ErrUnauthorized) || errors.Is(err, structs.ErrBadRequest) {
			response = responses.Unauthorized
			return
		}
		h.logger.Error(ctx, " err on h.session.Login", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
	response.Payload = user
}

func (h *handler) Logout(c *gin.Context) {
	var (
		response structs.Response
		ctx      = c.Request.Context()
	)

	defer reply.Json(c.Writer, http.StatusOK, &response)

	if err := h.session.Logout(ctx); err != nil {
		h.logger.Error(ctx, " err on h.session.Logout", zap.Error(err))
		response = responses.InternalErr
		return
	}

	response = responses.Success
}

func (h *handler) Me(c *gin.Context) {
	var response structs.Response
	defer reply.Json(c.Writer, http.StatusOK, &response)

	user := h.session.CurrentUser()
	if user == nil {
		response = responses.Unauthorized
		return
	}

	response = responses.Success
	response.Payload = gin.H{
		"user":    user,
		"isAdmin": h.session.IsAdmin(),
	}
}
