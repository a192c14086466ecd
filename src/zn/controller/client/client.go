// Package client manages the single live zeta-note Session and the commands that act on it.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/controller/resolver"
	"github.com/uber/zeta-note-client/src/zn/controller/session"
	"github.com/uber/zeta-note-client/src/zn/controller/status"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	znerrors "github.com/uber/zeta-note-client/src/zn/internal/errors"
	notifier "github.com/uber/zeta-note-client/src/zn/internal/progress-notifier"
	"github.com/uber/zeta-note-client/src/zn/internal/settings"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=clientmock/client_mock.go -package=clientmock . Controller

const (
	_downloadTitle = "Downloading zeta-note"

	// Events are small and handled quickly; the buffer only smooths bursts of status notifications.
	_eventBufferSize = 16
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller owns the current Session and serves the user-facing commands.
type Controller interface {
	// Start resolves the server and starts a Session. A missing server leaves the status dead and
	// is not an error.
	Start(ctx context.Context) error
	// Restart stops the current Session, waits for it, and starts a new one.
	Restart(ctx context.Context) error
	// Stop stops the current Session and hides the status indicator.
	Stop(ctx context.Context) error

	// ShowOutputChannel asks the calling host to open the output of the current Session.
	ShowOutputChannel(ctx context.Context) error
	// ShowReferences asks the calling host to show the given reference locations.
	ShowReferences(ctx context.Context, req *entity.ShowReferencesRequest) error
	// FollowLink asks the calling host to navigate to the target of a link.
	FollowLink(ctx context.Context, req *entity.FollowLinkRequest) error

	// Status returns the last applied Status.
	Status() entity.Status
	// StatusBar returns the status indicator as shown to hosts.
	StatusBar() entity.StatusBarParams
}

// Params are inbound parameters to initialize a new Controller.
type Params struct {
	fx.In

	Lifecycle     fx.Lifecycle
	Resolver      resolver.Resolver
	Sessions      session.Factory
	StatusItem    status.Item
	Settings      settings.Store
	EditorGateway editor.Gateway
	Notifier      notifier.NotificationManager
	Logger        *zap.SugaredLogger
	Stats         tally.Scope
}

type controller struct {
	resolver      resolver.Resolver
	sessions      session.Factory
	statusItem    status.Item
	settings      settings.Store
	editorGateway editor.Gateway
	notifier      notifier.NotificationManager
	logger        *zap.SugaredLogger
	stats         tally.Scope

	events   chan session.Event
	done     chan struct{}
	loopDone chan struct{}

	// lifecycleMu serializes Start, Restart and Stop so that teardown precedes the next start.
	lifecycleMu sync.Mutex

	// stateMu guards the current Session. Events are checked against it while holding it.
	stateMu        sync.Mutex
	current        session.Session
	currentReady   bool
	currentStopped bool

	// publishMu orders writes to the status item. It is never acquired while holding stateMu.
	publishMu sync.Mutex

	bgMu     sync.Mutex
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bgClosed bool
	bgWG     sync.WaitGroup

	stopWatch func() error
}

// New creates the Controller and hooks it to the application lifecycle.
func New(p Params) Controller {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	c := &controller{
		resolver:      p.Resolver,
		sessions:      p.Sessions,
		statusItem:    p.StatusItem,
		settings:      p.Settings,
		editorGateway: p.EditorGateway,
		notifier:      p.Notifier,
		logger:        p.Logger,
		stats:         p.Stats.SubScope("client"),

		events:   make(chan session.Event, _eventBufferSize),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),

		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: c.onStart,
		OnStop:  c.onStop,
	})
	return c
}

// onStart activates the client: the indicator is shown and the first Session starts in the background.
func (c *controller) onStart(ctx context.Context) error {
	go c.loop()

	stopWatch, err := c.settings.Watch(c.settingsChanged)
	if err != nil {
		c.logger.Warnw("settings changes will require a manual restart", zap.Error(err))
		stopWatch = func() error { return nil }
	}
	c.stopWatch = stopWatch

	c.statusItem.Show(ctx)
	c.goBackground(func(ctx context.Context) {
		if err := c.Start(ctx); err != nil {
			c.logger.Errorw("starting zeta-note", zap.Error(err))
		}
	})
	return nil
}

// onStop deactivates the client. Pending background work is cancelled before the Session is stopped.
func (c *controller) onStop(ctx context.Context) error {
	c.bgMu.Lock()
	c.bgClosed = true
	c.bgCancel()
	c.bgMu.Unlock()

	if err := c.stopWatch(); err != nil {
		c.logger.Warnw("stopping settings watcher", zap.Error(err))
	}
	c.bgWG.Wait()

	err := c.Stop(ctx)
	close(c.done)
	<-c.loopDone
	return err
}

func (c *controller) settingsChanged() {
	c.logger.Info("settings changed, restarting zeta-note")
	c.goBackground(func(ctx context.Context) {
		if err := c.Restart(ctx); err != nil {
			c.logger.Errorw("restarting zeta-note", zap.Error(err))
		}
	})
}

// goBackground runs f with the background context unless the controller is stopping.
func (c *controller) goBackground(f func(ctx context.Context)) {
	c.bgMu.Lock()
	defer c.bgMu.Unlock()
	if c.bgClosed {
		return
	}

	c.bgWG.Add(1)
	go func() {
		defer c.bgWG.Done()
		f(c.bgCtx)
	}()
}

func (c *controller) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	return c.start(ctx)
}

func (c *controller) Restart(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.stats.Counter("restarts").Inc(1)
	if err := c.stopCurrent(ctx); err != nil {
		c.logger.Warnw("stopping previous session", zap.Error(err))
	}
	c.publish(ctx, entity.DefaultStatus)
	return c.start(ctx)
}

func (c *controller) Stop(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	err := c.stopCurrent(ctx)

	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	c.statusItem.Update(ctx, entity.DeadStatus)
	c.statusItem.Hide(ctx)
	return err
}

// start runs with lifecycleMu held.
func (c *controller) start(ctx context.Context) error {
	if c.currentSession() != nil {
		c.logger.Info("zeta-note session already running")
		return nil
	}
	c.stats.Counter("starts").Inc(1)

	userSettings, err := c.settings.Load()
	if err != nil {
		// The configured settings are still usable without the overlay.
		c.logger.Errorw("loading settings", zap.Error(err))
	}

	progress, finish := c.downloadProgress(ctx)
	desc, err := c.resolver.Resolve(ctx, userSettings, progress)
	finish()
	if err != nil {
		c.markDead(ctx)
		if znerrors.IsServerNotFound(err) {
			c.stats.Counter("resolve_not_found").Inc(1)
			c.logger.Errorw("zeta-note server not found", zap.Error(err))
			return nil
		}
		return fmt.Errorf("resolving server: %w", err)
	}

	sess, err := c.sessions.New(desc, c.emit)
	if err != nil {
		c.markDead(ctx)
		return fmt.Errorf("creating session: %w", err)
	}

	c.stateMu.Lock()
	c.current = sess
	c.currentReady = false
	c.currentStopped = false
	c.stateMu.Unlock()

	c.logger.Infow("starting zeta-note session", zap.String("session", sess.ID().String()), zap.Any("descriptor", desc))
	if err := sess.Start(ctx); err != nil {
		if stopErr := c.stopCurrent(ctx); stopErr != nil {
			c.logger.Warnw("releasing failed session", zap.Error(stopErr))
		}
		c.markDead(ctx)
		return fmt.Errorf("starting session: %w", err)
	}
	return nil
}

// stopCurrent detaches the current Session before stopping it, so none of its later events apply.
func (c *controller) stopCurrent(ctx context.Context) error {
	c.stateMu.Lock()
	sess := c.current
	c.current = nil
	c.stateMu.Unlock()

	if sess == nil {
		return nil
	}
	c.logger.Infow("stopping zeta-note session", zap.String("session", sess.ID().String()))
	return sess.Stop(ctx)
}

func (c *controller) currentSession() session.Session {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.current
}

func (c *controller) markDead(ctx context.Context) {
	c.stats.Counter("dead").Inc(1)
	c.stats.Gauge("status_count").Update(0)
	c.publish(ctx, entity.DeadStatus)
}

func (c *controller) publish(ctx context.Context, s entity.Status) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	c.statusItem.Update(ctx, s)
}

// downloadProgress returns a progress callback that shows a work-done progress on every host on
// first use, and a function that ends it.
func (c *controller) downloadProgress(ctx context.Context) (resolver.ProgressFunc, func()) {
	var (
		handler notifier.NotificationHandler
		failed  bool
	)
	progress := func(percentage int) {
		if failed {
			return
		}
		if handler == nil {
			h, err := c.notifier.StartNotification(ctx, _downloadTitle)
			if err != nil {
				c.logger.Warnw("showing download progress", zap.Error(err))
				failed = true
				return
			}
			handler = h
		}
		handler.Channel() <- notifier.Notification{
			Percentage: uint32(percentage),
			Message:    fmt.Sprintf("%d%%", percentage),
		}
	}
	finish := func() {
		if handler != nil {
			handler.Done(ctx)
		}
	}
	return progress, finish
}

// emit hands an event to the loop. Events sent after the loop ended are dropped.
func (c *controller) emit(e session.Event) {
	select {
	case c.events <- e:
	case <-c.done:
	}
}

func (c *controller) loop() {
	defer close(c.loopDone)
	for {
		select {
		case e := <-c.events:
			c.handleEvent(e)
		case <-c.done:
			return
		}
	}
}

// handleEvent publishes the status an event produces. The decision is taken under stateMu and
// the hosts are written to after releasing it, so a slow host does not hold up a teardown.
func (c *controller) handleEvent(e session.Event) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if next, ok := c.applyEvent(e); ok {
		c.statusItem.Update(context.Background(), next)
	}
}

// applyEvent records e against the current Session and returns the status it produces, if any.
func (c *controller) applyEvent(e session.Event) (entity.Status, bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.current == nil || c.current.ID() != e.SessionID() {
		c.logger.Debugw("dropping event of a stale session", zap.String("session", e.SessionID().String()), zap.String("event", fmt.Sprintf("%T", e)))
		return entity.Status{}, false
	}

	switch e := e.(type) {
	case session.ReadyEvent:
		c.currentReady = true
		c.stats.Counter("ready").Inc(1)
		c.logger.Infow("zeta-note session ready", zap.String("session", e.ID.String()))
		return entity.Status{}, false
	case session.StatusEvent:
		if c.currentStopped {
			c.logger.Debugw("dropping status of a stopped session", zap.Any("status", e.Status))
			return entity.Status{}, false
		}
		if !c.currentReady {
			// Status is subscribed to once the handshake completes.
			c.logger.Debugw("dropping status of a session that is not ready", zap.Any("status", e.Status))
			return entity.Status{}, false
		}
		c.stats.Gauge("status_count").Update(float64(e.Status.Count))
		return e.Status, true
	case session.StoppedEvent:
		c.currentStopped = true
		c.stats.Counter("dead").Inc(1)
		c.stats.Gauge("status_count").Update(0)
		c.logger.Warnw("zeta-note session stopped", zap.String("session", e.ID.String()), zap.Error(e.Err))
		return entity.DeadStatus, true
	default:
		c.logger.Errorw("unknown session event", zap.String("event", fmt.Sprintf("%T", e)))
		return entity.Status{}, false
	}
}

func (c *controller) ShowOutputChannel(ctx context.Context) error {
	sess := c.currentSession()
	if sess == nil {
		return nil
	}

	if _, err := c.editorGateway.ShowDocument(ctx, &protocol.ShowDocumentParams{
		URI:       protocol.URI(uri.File(sess.OutputPath())),
		TakeFocus: false,
	}); err != nil {
		return fmt.Errorf("showing output: %w", err)
	}
	return nil
}

func (c *controller) ShowReferences(ctx context.Context, req *entity.ShowReferencesRequest) error {
	if c.currentSession() == nil {
		return nil
	}

	params, err := mapper.ShowReferencesToEditorCommand(req)
	if err != nil {
		return err
	}
	return c.editorGateway.ExecuteEditorCommand(ctx, params)
}

func (c *controller) FollowLink(ctx context.Context, req *entity.FollowLinkRequest) error {
	if c.currentSession() == nil {
		return nil
	}

	params, err := mapper.FollowLinkToEditorCommand(req)
	if err != nil {
		return err
	}
	return c.editorGateway.ExecuteEditorCommand(ctx, params)
}

func (c *controller) Status() entity.Status {
	return c.statusItem.Status()
}

func (c *controller) StatusBar() entity.StatusBarParams {
	return c.statusItem.StatusBar()
}
