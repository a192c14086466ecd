package zn

import (
	"context"

	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const _serverName = "zn-client"

// Initialize records the host's capabilities and advertises the zn-client commands.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToInitializeParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	h, err := r.hosts.GetFromContext(ctx)
	if err != nil {
		return reply(ctx, nil, err)
	}
	h.InitializeParams = params
	if params.ClientInfo != nil {
		h.ClientName = params.ClientInfo.Name
	}
	if err := r.hosts.Set(ctx, h); err != nil {
		return reply(ctx, nil, err)
	}
	r.logger.Infow("host initialized", zap.String("client", h.ClientName))

	return reply(ctx, &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: entity.Commands,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name: _serverName,
		},
	}, nil)
}

// Initialized sends the current status indicator to the host once it is ready to receive notifications.
func (r *jsonRPCRouter) Initialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if _, err := mapper.RequestToInitializedParams(req); err != nil {
		return reply(ctx, nil, err)
	}

	bar := r.ctrl.StatusBar()
	if err := r.editorGateway.ShowStatusBar(ctx, &bar); err != nil {
		r.logger.Warnw("sending status to host", zap.Error(err))
	}
	return reply(ctx, nil, nil)
}

// Shutdown only concerns the calling host; the daemon and its server keep running for the others.
func (r *jsonRPCRouter) Shutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

// Exit stops all traffic to the calling host.
func (r *jsonRPCRouter) Exit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	// Reply first so the host is answered before it is removed.
	err := reply(ctx, nil, nil)
	endHost(ctx, r.hosts, r.editorGateway, r.logger, r.uuid)
	return err
}
