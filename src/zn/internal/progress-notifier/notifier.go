package notifier

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/factory"
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"github.com/uber/zeta-note-client/src/zn/repository/host"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// A download reports at most 101 distinct percentages; the buffer absorbs bursts while hosts are slow.
const _bufferSize = 20

// Notification is a single progress update.
type Notification struct {
	// Percentage is the completion in the range 0-100.
	Percentage uint32
	// Message is optional text shown next to the progress.
	Message string
}

// NotificationHandler owns a single work-done progress shown on every connected host.
type NotificationHandler interface {
	Channel() chan<- Notification
	Add(ctx context.Context)
	Done(ctx context.Context)
	IsClosed() bool
	// Wait blocks until the end of the progress has been sent to every host.
	Wait()
}

type notificationHandlerImpl struct {
	parentManager NotificationManager
	hosts         host.Repository
	editorGateway editor.Gateway
	logger        *zap.SugaredLogger

	title string
	token *protocol.ProgressToken

	// hosts that have seen the begin of this progress
	started map[uuid.UUID]struct{}

	channel chan Notification
	doneCh  chan struct{}

	senderMu    sync.Mutex
	senderCount int
}

type notificationHandlerParams struct {
	ParentManager NotificationManager
	Hosts         host.Repository
	EditorGateway editor.Gateway
	Logger        *zap.SugaredLogger
	Title         string
}

func newNotificationHandler(ctx context.Context, p notificationHandlerParams) (*notificationHandlerImpl, error) {
	h := &notificationHandlerImpl{
		parentManager: p.ParentManager,
		hosts:         p.Hosts,
		editorGateway: p.EditorGateway,
		logger:        p.Logger,
		title:         p.Title,
		senderCount:   1,

		token:   protocol.NewProgressToken(factory.UUID().String()),
		started: make(map[uuid.UUID]struct{}),
		channel: make(chan Notification, _bufferSize),
		doneCh:  make(chan struct{}),
	}

	hosts, err := h.hosts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, hst := range hosts {
		h.beginNotification(ctx, hst)
	}

	go h.handleUpdates()
	return h, nil
}

// IsClosed returns true if the handler has no remaining senders.
func (h *notificationHandlerImpl) IsClosed() bool {
	h.senderMu.Lock()
	defer h.senderMu.Unlock()
	return h.senderCount <= 0
}

// Add registers an additional sender. It has no effect on a closed handler.
func (h *notificationHandlerImpl) Add(ctx context.Context) {
	h.senderMu.Lock()
	defer h.senderMu.Unlock()

	if h.senderCount <= 0 {
		return
	}
	h.senderCount++
}

// Done removes one sender. The progress ends once the last sender is done.
func (h *notificationHandlerImpl) Done(ctx context.Context) {
	h.senderMu.Lock()
	h.senderCount--
	remaining := h.senderCount
	if remaining == 0 {
		close(h.channel)
	}
	h.senderMu.Unlock()

	switch {
	case remaining == 0:
		h.parentManager.Delete(h.title)
	case remaining < 0:
		h.logger.Warnf("Done() called %v extra times on progress %q", -remaining, h.title)
	}
}

// Channel returns the channel that can be used to send updates.
func (h *notificationHandlerImpl) Channel() chan<- Notification {
	return h.channel
}

func (h *notificationHandlerImpl) Wait() {
	<-h.doneCh
}

// handleUpdates broadcasts every update and, once the channel is closed and drained, ends the progress.
func (h *notificationHandlerImpl) handleUpdates() {
	defer close(h.doneCh)
	ctx := context.Background()

	for update := range h.channel {
		h.broadcastUpdate(ctx, update)
	}

	hosts, err := h.hosts.GetAll(ctx)
	if err != nil {
		h.logger.Errorf("ending progress %q: %s", h.title, err)
		return
	}
	for _, hst := range hosts {
		if _, ok := h.started[hst.UUID]; !ok {
			continue
		}
		if err := h.endNotification(ctx, hst); err != nil {
			h.logger.Warnf("ending progress for host %s: %s", hst.UUID, err)
		}
	}
}

func (h *notificationHandlerImpl) broadcastUpdate(ctx context.Context, update Notification) {
	hosts, err := h.hosts.GetAll(ctx)
	if err != nil {
		h.logger.Errorf("posting progress update: %s", err)
		return
	}
	for _, hst := range hosts {
		// Hosts that connected after the progress began need their own begin.
		if _, ok := h.started[hst.UUID]; !ok {
			if !h.beginNotification(ctx, hst) {
				continue
			}
		}
		if err := h.updateNotification(ctx, hst, update); err != nil {
			h.logger.Warnf("updating progress for host %s: %s", hst.UUID, err)
		}
	}
}

// The methods below provide simple wrappers for editor gateway calls.

func (h *notificationHandlerImpl) beginNotification(ctx context.Context, hst *entity.Host) bool {
	hCtx := mapper.HostUUIDToContext(ctx, hst.UUID)
	if err := h.editorGateway.WorkDoneProgressCreate(hCtx, &protocol.WorkDoneProgressCreateParams{
		Token: *h.token,
	}); err != nil {
		h.logger.Warnf("creating progress for host %s: %s", hst.UUID, err)
		return false
	}

	if err := h.editorGateway.Progress(hCtx, &protocol.ProgressParams{
		Token: *h.token,
		Value: &protocol.WorkDoneProgressBegin{
			Kind:       protocol.WorkDoneProgressKindBegin,
			Title:      h.title,
			Percentage: 0,
		},
	}); err != nil {
		h.logger.Warnf("beginning progress for host %s: %s", hst.UUID, err)
		return false
	}
	h.started[hst.UUID] = struct{}{}
	return true
}

func (h *notificationHandlerImpl) updateNotification(ctx context.Context, hst *entity.Host, update Notification) error {
	return h.editorGateway.Progress(mapper.HostUUIDToContext(ctx, hst.UUID), &protocol.ProgressParams{
		Token: *h.token,
		Value: &protocol.WorkDoneProgressReport{
			Kind:       protocol.WorkDoneProgressKindReport,
			Message:    update.Message,
			Percentage: update.Percentage,
		},
	})
}

func (h *notificationHandlerImpl) endNotification(ctx context.Context, hst *entity.Host) error {
	return h.editorGateway.Progress(mapper.HostUUIDToContext(ctx, hst.UUID), &protocol.ProgressParams{
		Token: *h.token,
		Value: &protocol.WorkDoneProgressEnd{
			Kind: protocol.WorkDoneProgressKindEnd,
		},
	})
}
