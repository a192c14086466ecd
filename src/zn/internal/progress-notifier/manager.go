package notifier

import (
	"context"
	"sync"

	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"github.com/uber/zeta-note-client/src/zn/repository/host"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=notifiermock/notifier_mock.go -package=notifiermock . NotificationManager,NotificationHandler

// Module provides the NotificationManager.
var Module = fx.Provide(NewNotificationManager)

// NotificationManagerParams are used to initialize a new NotificationManager.
type NotificationManagerParams struct {
	fx.In

	Hosts         host.Repository
	EditorGateway editor.Gateway
	Logger        *zap.SugaredLogger
}

// NotificationManager shares progress notifications between concurrent reporters.
// StartNotification will start a new NotificationHandler, or join the open one with the same title.
type NotificationManager interface {
	StartNotification(ctx context.Context, title string) (NotificationHandler, error)
	Delete(id string)
}

// NewNotificationManager creates a new NotificationManager.
func NewNotificationManager(p NotificationManagerParams) NotificationManager {
	return &notificationManagerImpl{
		hosts:         p.Hosts,
		editorGateway: p.EditorGateway,
		logger:        p.Logger,

		handlers: make(map[string]NotificationHandler),
	}
}

type notificationManagerImpl struct {
	hosts         host.Repository
	editorGateway editor.Gateway
	logger        *zap.SugaredLogger

	handlers map[string]NotificationHandler
	mu       sync.Mutex
}

// StartNotification starts a new NotificationHandler, or joins the open one for this title.
// The progress stays visible until every caller has called Done() on the handler.
func (m *notificationManagerImpl) StartNotification(ctx context.Context, title string) (NotificationHandler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteIfClosed(title)
	if existing, ok := m.handlers[title]; ok {
		existing.Add(ctx)
		return existing, nil
	}

	h, err := newNotificationHandler(ctx, notificationHandlerParams{
		ParentManager: m,
		Hosts:         m.hosts,
		EditorGateway: m.editorGateway,
		Logger:        m.logger,
		Title:         title,
	})
	if err != nil {
		return nil, err
	}
	m.handlers[title] = h
	return h, nil
}

// Delete lets a closed NotificationHandler remove itself.
func (m *notificationManagerImpl) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteIfClosed(id)
}

func (m *notificationManagerImpl) deleteIfClosed(id string) {
	if h, ok := m.handlers[id]; ok && h.IsClosed() {
		delete(m.handlers, id)
	}
}
