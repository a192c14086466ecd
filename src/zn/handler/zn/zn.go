// Package zn serves the zn-client JSON-RPC API to editor hosts.
package zn

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/controller/client"
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"github.com/uber/zeta-note-client/src/zn/internal/jsonrpcfx"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"github.com/uber/zeta-note-client/src/zn/repository/host"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler accepts editor host connections.
type Handler interface {
	jsonrpcfx.ConnectionManager
}

// Params are inbound parameters to initialize a new Handler.
type Params struct {
	fx.In

	Controller    client.Controller
	JSONRPC       jsonrpcfx.JSONRPCModule
	Hosts         host.Repository
	EditorGateway editor.Gateway
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
}

type connectionManager struct {
	ctrl          client.Controller
	hosts         host.Repository
	editorGateway editor.Gateway
	logger        *zap.SugaredLogger
	stats         tally.Scope
}

// New constructs the Handler and registers it with the JSON-RPC inbound.
func New(p Params) (Handler, error) {
	c := &connectionManager{
		ctrl:          p.Controller,
		hosts:         p.Hosts,
		editorGateway: p.EditorGateway,
		logger:        p.Logger,
		stats:         p.Stats.SubScope("json_rpc"),
	}
	if err := p.JSONRPC.RegisterConnectionManager(c); err != nil {
		return nil, fmt.Errorf("registering connection manager: %w", err)
	}
	return c, nil
}

// NewConnection stores a new host and returns a router bound to its UUID.
func (c *connectionManager) NewConnection(ctx context.Context, conn jsonrpc2.Conn) (jsonrpcfx.Router, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating host id: %w", err)
	}

	if err := c.hosts.Set(ctx, mapper.UUIDToHost(id, conn)); err != nil {
		return nil, fmt.Errorf("saving host: %w", err)
	}
	if err := c.editorGateway.RegisterClient(ctx, id, conn); err != nil {
		if delErr := c.hosts.Delete(ctx, id); delErr != nil {
			c.logger.Warnw("removing unregistered host", zap.Error(delErr))
		}
		return nil, fmt.Errorf("registering host: %w", err)
	}
	c.stats.Counter("connections").Inc(1)

	return &jsonRPCRouter{
		ctrl:          c.ctrl,
		hosts:         c.hosts,
		editorGateway: c.editorGateway,
		logger:        c.logger.With("host", id.String()),
		uuid:          id,
		stats:         c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection, whether or not the host sent exit.
func (c *connectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	endHost(ctx, c.hosts, c.editorGateway, c.logger, id)
}

// endHost stops all traffic to a host. It may run more than once for the same host.
func endHost(ctx context.Context, hosts host.Repository, gw editor.Gateway, logger *zap.SugaredLogger, id uuid.UUID) {
	if err := gw.DeregisterClient(ctx, id); err != nil {
		logger.Warnw("deregistering host", zap.Error(err))
	}
	if err := hosts.Delete(ctx, id); err != nil {
		logger.Warnw("removing host", zap.Error(err))
	}
}
