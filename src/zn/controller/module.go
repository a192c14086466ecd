package controller

import (
	"github.com/uber/zeta-note-client/src/zn/controller/client"
	"github.com/uber/zeta-note-client/src/zn/controller/resolver"
	"github.com/uber/zeta-note-client/src/zn/controller/session"
	"github.com/uber/zeta-note-client/src/zn/controller/status"
	"go.uber.org/fx"
)

var Module = fx.Options(
	client.Module,
	resolver.Module,
	session.Module,
	status.Module,
)
