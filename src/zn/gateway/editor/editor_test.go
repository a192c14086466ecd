package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/zeta-note-client/idl/mock/jsonrpc2mock"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/factory"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func getTestGateway(t *testing.T) (*gateway, *jsonrpc2mock.MockConn, context.Context) {
	ctrl := gomock.NewController(t)
	g := &gateway{
		clients:     make(map[uuid.UUID]protocol.Client),
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      zap.NewNop(),
	}

	id := factory.UUID()
	mockConn := jsonrpc2mock.NewMockConn(ctrl)
	require.NoError(t, g.RegisterClient(context.Background(), id, mockConn))
	return g, mockConn, mapper.HostUUIDToContext(context.Background(), id)
}

func TestRegisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := New(zap.NewNop()).(*gateway)

	for i := 0; i < 10; i++ {
		err := g.RegisterClient(ctx, factory.UUID(), jsonrpc2mock.NewMockConn(ctrl))
		assert.NoError(t, err)
	}

	assert.Len(t, g.clients, 10)
	assert.Len(t, g.connections, 10)
}

func TestDeregisterClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := New(zap.NewNop()).(*gateway)

	for i := 0; i < 10; i++ {
		require.NoError(t, g.RegisterClient(ctx, factory.UUID(), jsonrpc2mock.NewMockConn(ctrl)))
	}

	for key := range g.clients {
		assert.NoError(t, g.DeregisterClient(ctx, key))
		assert.Nil(t, g.clients[key])
	}
	assert.Len(t, g.clients, 0)
	assert.Len(t, g.connections, 0)
}

func TestExecuteEditorCommand(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	params := &protocol.ExecuteCommandParams{Command: entity.EditorCommandShowReferences}

	t.Run("notification success", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Any(), entity.MethodEditorCommand, params).Return(nil)
		assert.NoError(t, g.ExecuteEditorCommand(ctx, params))
	})

	t.Run("notification failure", func(t *testing.T) {
		mockConn.EXPECT().Notify(gomock.Any(), entity.MethodEditorCommand, params).Return(errors.New("closed"))
		assert.Error(t, g.ExecuteEditorCommand(ctx, params))
	})

	t.Run("no host in context", func(t *testing.T) {
		assert.Error(t, g.ExecuteEditorCommand(context.Background(), params))
	})

	t.Run("unknown host", func(t *testing.T) {
		assert.Error(t, g.ExecuteEditorCommand(mapper.HostUUIDToContext(context.Background(), factory.UUID()), params))
	})
}

func TestShowDocument(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	params := &protocol.ShowDocumentParams{URI: "file:///tmp/zn-client/server/1.log", External: true}

	t.Run("call success", func(t *testing.T) {
		mockConn.EXPECT().Call(gomock.Any(), protocol.MethodShowDocument, params, gomock.Any()).DoAndReturn(
			func(ctx context.Context, method string, params, result interface{}) (jsonrpc2.ID, error) {
				result.(*protocol.ShowDocumentResult).Success = true
				return jsonrpc2.NewNumberID(1), nil
			})
		result, err := g.ShowDocument(ctx, params)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("call failure", func(t *testing.T) {
		mockConn.EXPECT().Call(gomock.Any(), protocol.MethodShowDocument, params, gomock.Any()).Return(jsonrpc2.NewNumberID(2), errors.New("closed"))
		_, err := g.ShowDocument(ctx, params)
		assert.Error(t, err)
	})

	t.Run("no host in context", func(t *testing.T) {
		_, err := g.ShowDocument(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestShowMessage(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	params := &protocol.ShowMessageParams{Type: protocol.MessageTypeError, Message: "sample"}

	mockConn.EXPECT().Notify(gomock.Any(), protocol.MethodWindowShowMessage, params).Return(nil)
	assert.NoError(t, g.ShowMessage(ctx, params))
	assert.Error(t, g.ShowMessage(context.Background(), params))
}

func TestProgress(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	token := protocol.NewProgressToken("download")

	t.Run("create", func(t *testing.T) {
		params := &protocol.WorkDoneProgressCreateParams{Token: *token}
		mockConn.EXPECT().Call(gomock.Any(), protocol.MethodWorkDoneProgressCreate, params, gomock.Any()).Return(jsonrpc2.NewNumberID(1), nil)
		assert.NoError(t, g.WorkDoneProgressCreate(ctx, params))
		assert.Error(t, g.WorkDoneProgressCreate(context.Background(), params))
	})

	t.Run("report", func(t *testing.T) {
		params := &protocol.ProgressParams{Token: *token, Value: "sampleValue"}
		mockConn.EXPECT().Notify(gomock.Any(), protocol.MethodProgress, params).Return(nil)
		assert.NoError(t, g.Progress(ctx, params))
		assert.Error(t, g.Progress(context.Background(), params))
	})
}

func TestShowStatusBar(t *testing.T) {
	g, mockConn, ctx := getTestGateway(t)
	params := &entity.StatusBarParams{Text: "✓ ZN (3)", Visible: true, State: entity.RunStateOK, Count: 3}

	mockConn.EXPECT().Notify(gomock.Any(), entity.MethodStatusBar, params).Return(nil)
	assert.NoError(t, g.ShowStatusBar(ctx, params))
	assert.Error(t, g.ShowStatusBar(context.Background(), params))
}

func TestBroadcastStatusBar(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	g := New(zap.NewNop()).(*gateway)
	params := &entity.StatusBarParams{Text: "? ZN", Visible: true}

	t.Run("no hosts", func(t *testing.T) {
		assert.NoError(t, g.BroadcastStatusBar(ctx, params))
	})

	healthy := jsonrpc2mock.NewMockConn(ctrl)
	broken := jsonrpc2mock.NewMockConn(ctrl)
	require.NoError(t, g.RegisterClient(ctx, factory.UUID(), healthy))
	require.NoError(t, g.RegisterClient(ctx, factory.UUID(), broken))

	t.Run("one host fails", func(t *testing.T) {
		healthy.EXPECT().Notify(gomock.Any(), entity.MethodStatusBar, params).Return(nil)
		broken.EXPECT().Notify(gomock.Any(), entity.MethodStatusBar, params).Return(errors.New("closed"))
		err := g.BroadcastStatusBar(ctx, params)
		assert.ErrorContains(t, err, "closed")
	})
}
