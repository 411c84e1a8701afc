package handlers

import (
	"staffdesk/apps/gateway/handlers/analytics"
	"staffdesk/apps/gateway/handlers/auth"
	"staffdesk/apps/gateway/handlers/employee"
	"staffdesk/apps/gateway/handlers/export"
	"staffdesk/apps/gateway/handlers/middleware"

	"go.uber.org/fx"
)

var Module = fx.Options(
	middleware.Module,
	auth.Module,
	employee.Module,
	export.Module,
	analytics.Module,
)
