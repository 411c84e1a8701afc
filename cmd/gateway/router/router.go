package router

import (
	"context"
	"net/http"

	"staffdesk/apps/gateway/handlers/analytics"
	"staffdesk/apps/gateway/handlers/auth"
	"staffdesk/apps/gateway/handlers/employee"
	"staffdesk/apps/gateway/handlers/export"
	"staffdesk/apps/gateway/handlers/middleware"
	"staffdesk/pkg/config"
	"staffdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Invoke(
		NewRouter,
	),
)

type Params struct {
	fx.In

	middleware.Middleware
	Lifecycle fx.Lifecycle
	Config    config.IConfig
	Logger    logger.Logger
	Auth      auth.Handler
	Employee  employee.Handler
	Export    export.Handler
	Analytics analytics.Handler
}

func NewRouter(params Params) {
	r := gin.New()
	baseUrl := "/api/v1"

	out := r.Group(baseUrl)
	out.Use(params.Ctx(), gin.Logger(), gin.Recovery())

	authGroup := out.Group("/auth")
	{
		authGroup.POST("/login", params.Auth.Login)
		authGroup.POST("/logout", params.Auth.Logout)
		authGroup.GET("/me", params.Auth.Me)
	}

	api := r.Group(baseUrl)
	api.Use(params.Ctx(), gin.Logger(), gin.Recovery())
	api.Use(params.CheckAuth())

	employeeGroup := api.Group("/employee")
	{
		employeeGroup.GET("/", params.Employee.GetListEmployee)
		employeeGroup.GET("/departments", params.Employee.GetDepartments)
		employeeGroup.GET("/positions", params.Employee.GetPositions)
		employeeGroup.GET("/country-codes", params.Employee.GetCountryCodes)
		employeeGroup.GET("/check-email", params.Employee.CheckEmail)
		employeeGroup.GET("/:id", params.Employee.GetByIDEmployee)
		employeeGroup.POST("/", params.Employee.CreateEmployee)
		employeeGroup.PUT("/:id", params.Employee.UpdateEmployee)
		employeeGroup.DELETE("/:id", params.Employee.DeleteEmployee)
	}

	exportGroup := api.Group("/export")
	{
		exportGroup.GET("/employees/csv", params.Export.ExportCSV)
		exportGroup.GET("/employees/excel", params.Export.ExportExcel)
		exportGroup.GET("/analytics", params.Export.ExportAnalyticsReport)
	}

	analyticsGroup := api.Group("/analytics")
	{
		analyticsGroup.GET("/", params.Analytics.GetAnalytics)
	}
	api.GET("/dashboard", params.Analytics.GetDashboard)

	allowedOrigins := params.Config.GetStringSlice("server.allowed_origins")
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}

	server := http.Server{
		Addr: params.Config.GetString("server.port"),
		Handler: cors.New(cors.Options{
			AllowedHeaders:   []string{"*"},
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			AllowCredentials: true,
		}).Handler(r),
	}

	params.Lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				params.Logger.Info(ctx, "Starting application")
				go func() {
					if err := server.ListenAndServe(); err != nil {
						params.Logger.Error(ctx, "Err on ListenAndServe", zap.Error(err))
					}
				}()

				params.Logger.Info(ctx, "Application starting on port", zap.String("port", params.Config.GetString("server.port")))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				params.Logger.Info(ctx, "Application stopped")
				return server.Shutdown(ctx)
			},
		},
	)
}
