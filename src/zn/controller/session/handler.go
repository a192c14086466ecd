package session

import (
	"context"
	"fmt"

	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const _methodLogTrace = "$/logTrace"

// handle serves the requests and notifications the server sends to its client.
func (s *session) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case entity.MethodServerStatus:
		status, err := mapper.StatusFromNotification(req.Params())
		if err != nil {
			s.logger.Warnw("ignoring malformed status notification", zap.Error(err))
			return reply(ctx, nil, err)
		}
		s.emit(StatusEvent{ID: s.id, Status: status})
		return reply(ctx, nil, nil)

	case protocol.MethodWindowLogMessage:
		params, err := mapper.RequestToLogMessageParams(req)
		if err != nil {
			return reply(ctx, nil, err)
		}
		fmt.Fprintf(s.output, "[%s] %s\n", params.Type, params.Message)
		return reply(ctx, nil, nil)

	case protocol.MethodWindowShowMessage, protocol.MethodWindowShowMessageRequest:
		params, err := mapper.RequestToShowMessageParams(req)
		if err != nil {
			return reply(ctx, nil, err)
		}
		fmt.Fprintf(s.output, "[%s] %s\n", params.Type, params.Message)
		return reply(ctx, nil, nil)

	case protocol.MethodWorkspaceConfiguration:
		params, err := mapper.RequestToConfigurationParams(req)
		if err != nil {
			return reply(ctx, nil, err)
		}
		// No client-side settings are forwarded to the server.
		return reply(ctx, make([]interface{}, len(params.Items)), nil)

	case protocol.MethodWorkspaceWorkspaceFolders:
		return reply(ctx, s.folders, nil)

	case protocol.MethodWorkDoneProgressCreate,
		protocol.MethodClientRegisterCapability,
		protocol.MethodClientUnregisterCapability,
		protocol.MethodCodeLensRefresh:
		return reply(ctx, nil, nil)

	case protocol.MethodProgress,
		_methodLogTrace,
		protocol.MethodTelemetryEvent,
		protocol.MethodTextDocumentPublishDiagnostics:
		return reply(ctx, nil, nil)

	default:
		s.logger.Debugw("unhandled server method", zap.String("method", req.Method()))
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}
