package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/gateway"
	"github.com/uber/zeta-note-client/src/zn/handler"
	"github.com/uber/zeta-note-client/src/zn/internal/clock"
	"github.com/uber/zeta-note-client/src/zn/internal/core"
	"github.com/uber/zeta-note-client/src/zn/internal/executor"
	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"github.com/uber/zeta-note-client/src/zn/internal/jsonrpcfx"
	notifier "github.com/uber/zeta-note-client/src/zn/internal/progress-notifier"
	"github.com/uber/zeta-note-client/src/zn/internal/serverinfofile"
	"github.com/uber/zeta-note-client/src/zn/internal/settings"
	workspaceutils "github.com/uber/zeta-note-client/src/zn/internal/workspace-utils"
	"go.uber.org/fx"
)

// Module defines the zn-client application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	executor.Module,
	clock.Module,
	settings.Module,
	notifier.Module,
	serverinfofile.Module,
	workspaceutils.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "zn-client",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)
