package editor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=editormock/editor_mock.go -package=editormock . Gateway

const _errSendToHost = "sending call/notification to editor host: %w"

// Gateway is used to send outbound notifications and calls to editor hosts.
// Calls other than broadcasts must carry a host UUID in the context, which routes them to that host.
type Gateway interface {
	// RegisterClient registers a new host connection with the gateway.
	RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error
	// DeregisterClient removes a host connection from the gateway.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	// ExecuteEditorCommand asks the host to run one of its own commands.
	ExecuteEditorCommand(ctx context.Context, params *protocol.ExecuteCommandParams) error
	ShowDocument(ctx context.Context, params *protocol.ShowDocumentParams) (*protocol.ShowDocumentResult, error)
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error
	WorkDoneProgressCreate(ctx context.Context, params *protocol.WorkDoneProgressCreateParams) error
	Progress(ctx context.Context, params *protocol.ProgressParams) error

	// ShowStatusBar sends the status indicator to the calling host.
	ShowStatusBar(ctx context.Context, params *entity.StatusBarParams) error
	// BroadcastStatusBar sends the status indicator to every registered host.
	BroadcastStatusBar(ctx context.Context, params *entity.StatusBarParams) error
}

type gateway struct {
	clients     map[uuid.UUID]protocol.Client
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

// New returns a Gateway for sending editor host notifications and calls.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.clients[id] = protocol.ClientDispatcher(conn, g.logger)
	g.connections[id] = conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.clients, id)
	delete(g.connections, id)
	return nil
}

func (g *gateway) ExecuteEditorCommand(ctx context.Context, params *protocol.ExecuteCommandParams) error {
	_, conn, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToHost, err)
	}
	return conn.Notify(ctx, entity.MethodEditorCommand, params)
}

func (g *gateway) ShowDocument(ctx context.Context, params *protocol.ShowDocumentParams) (*protocol.ShowDocumentResult, error) {
	_, conn, err := g.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf(_errSendToHost, err)
	}

	// protocol.Client does not include window/showDocument, so call it directly.
	var result protocol.ShowDocumentResult
	if _, err := conn.Call(ctx, protocol.MethodShowDocument, params, &result); err != nil {
		return nil, fmt.Errorf(_errSendToHost, err)
	}
	return &result, nil
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	c, _, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToHost, err)
	}
	return c.ShowMessage(ctx, params)
}

func (g *gateway) WorkDoneProgressCreate(ctx context.Context, params *protocol.WorkDoneProgressCreateParams) error {
	c, _, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToHost, err)
	}
	return c.WorkDoneProgressCreate(ctx, params)
}

func (g *gateway) Progress(ctx context.Context, params *protocol.ProgressParams) error {
	c, _, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToHost, err)
	}
	return c.Progress(ctx, params)
}

func (g *gateway) ShowStatusBar(ctx context.Context, params *entity.StatusBarParams) error {
	_, conn, err := g.getClient(ctx)
	if err != nil {
		return fmt.Errorf(_errSendToHost, err)
	}
	return conn.Notify(ctx, entity.MethodStatusBar, params)
}

func (g *gateway) BroadcastStatusBar(ctx context.Context, params *entity.StatusBarParams) error {
	g.clientsMu.Lock()
	ids := make([]uuid.UUID, 0, len(g.connections))
	conns := make(map[uuid.UUID]jsonrpc2.Conn, len(g.connections))
	for id, conn := range g.connections {
		ids = append(ids, id)
		conns[id] = conn
	}
	g.clientsMu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var errs error
	for _, id := range ids {
		if err := conns[id].Notify(ctx, entity.MethodStatusBar, params); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("host %s: %w", id, err))
		}
	}
	return errs
}

func (g *gateway) getClient(ctx context.Context) (protocol.Client, jsonrpc2.Conn, error) {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	id, err := mapper.ContextToHostUUID(ctx)
	if err != nil {
		return nil, nil, err
	}

	client, ok := g.clients[id]
	if !ok {
		return nil, nil, fmt.Errorf("host with id %q not found", id)
	}

	conn, ok := g.connections[id]
	if !ok {
		return nil, nil, fmt.Errorf("host with id %q not found", id)
	}
	return client, conn, nil
}
