package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/model"
	"go.lsp.dev/jsonrpc2"
)

// HostToModel maps a Host entity to its model equivalent.
func HostToModel(h *entity.Host) *model.Host {
	return &model.Host{
		UUID:             h.UUID,
		Conn:             h.Conn,
		InitializeParams: h.InitializeParams,
		ClientName:       h.ClientName,
	}
}

// ModelToHost maps a model Host to its entity equivalent.
func ModelToHost(h *model.Host) (*entity.Host, error) {
	return &entity.Host{
		UUID:             h.UUID,
		Conn:             h.Conn,
		InitializeParams: h.InitializeParams,
		ClientName:       h.ClientName,
	}, nil
}

// UUIDToHost initializes a new Host entity with the assigned uuid and connection.
func UUIDToHost(u uuid.UUID, c jsonrpc2.Conn) *entity.Host {
	return &entity.Host{
		UUID: u,
		Conn: c,
	}
}

// ContextToHostUUID extracts the host UUID from a context.
func ContextToHostUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.HostContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoHostFoundError{}
	}
	return s, nil
}

// HostUUIDToContext returns a child context routed to the given host.
func HostUUIDToContext(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, entity.HostContextKey, id)
}
