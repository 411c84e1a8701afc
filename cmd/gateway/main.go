package main

import (
	"staffdesk/apps/gateway"
	"staffdesk/cmd/gateway/router"
	"staffdesk/internal"
	"staffdesk/pkg"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		gateway.Module,
		router.Module,
		pkg.Module,
		internal.Module,
	).Run()
}
