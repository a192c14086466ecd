package zn

import (
	"context"

	"go.lsp.dev/jsonrpc2"
)

// Status returns the last Status reported by the server.
func (r *jsonRPCRouter) Status(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, r.ctrl.Status(), nil)
}
