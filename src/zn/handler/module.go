package handler

import (
	controller "github.com/uber/zeta-note-client/src/zn/controller"
	"github.com/uber/zeta-note-client/src/zn/controller/client"
	handler "github.com/uber/zeta-note-client/src/zn/handler/zn"
	"github.com/uber/zeta-note-client/src/zn/repository/host"
	"go.uber.org/fx"
)

// Module provides the zn-client inbound into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(host.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(c client.Controller) {}),
)
