package zn

import (
	"context"
	"fmt"

	"github.com/uber/zeta-note-client/src/zn/entity"
	znerrors "github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// ExecuteCommand runs one of the zn-client commands on behalf of the host.
func (r *jsonRPCRouter) ExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToExecuteCommandParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.executeCommand(ctx, params)
	if err != nil {
		r.logger.Warnw("command failed", zap.String("command", params.Command), zap.Error(err))
		if znerrors.IsBadRequest(err) {
			err = fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err)
		}
	}
	r.stats.Tagged(map[string]string{"command": params.Command}).Counter("commands").Inc(1)
	return reply(ctx, nil, err)
}

func (r *jsonRPCRouter) executeCommand(ctx context.Context, params *protocol.ExecuteCommandParams) error {
	switch params.Command {
	case "":
		return znerrors.NoCommandOnWireError

	case entity.CommandRestartServer:
		return r.ctrl.Restart(ctx)

	case entity.CommandShowOutputChannel:
		return r.ctrl.ShowOutputChannel(ctx)

	case entity.CommandShowReferences:
		var payload entity.ShowReferencesRequest
		if err := commandPayload(params, &payload); err != nil {
			return err
		}
		return r.ctrl.ShowReferences(ctx, &payload)

	case entity.CommandFollowLink:
		var payload entity.FollowLinkRequest
		if err := commandPayload(params, &payload); err != nil {
			return err
		}
		return r.ctrl.FollowLink(ctx, &payload)

	default:
		return fmt.Errorf("%w: %q", znerrors.UnknownCommandError, params.Command)
	}
}

// commandPayload decodes the single argument of a navigation command.
func commandPayload(params *protocol.ExecuteCommandParams, dst interface{}) error {
	if err := mapper.CommandArgument(params, dst); err != nil {
		return fmt.Errorf("%w: %v", znerrors.NoPayloadOnWireError, err)
	}
	return nil
}
