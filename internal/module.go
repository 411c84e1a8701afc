package internal

import (
	"staffdesk/internal/analytics"
	"staffdesk/internal/dashboard"
	"staffdesk/internal/emsapi"
	"staffdesk/internal/form"
	"staffdesk/internal/list"
	"staffdesk/internal/report"
	"staffdesk/internal/session"

	"go.uber.org/fx"
)

var Module = fx.Options(
	emsapi.Module,
	session.Module,
	form.Module,
	list.Module,
	analytics.Module,
	dashboard.Module,
	report.Module,
)
