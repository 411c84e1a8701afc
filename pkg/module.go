package pkg

import (
	"go.uber.org/fx"

	"staffdesk/pkg/config"
	"staffdesk/pkg/logger"
	"staffdesk/pkg/reply"
	"staffdesk/pkg/storage"
)

var Module = fx.Options(
	config.Module,
	logger.Module,
	storage.Module,
	reply.Module,
)
