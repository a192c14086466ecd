// Package session runs one zeta-note server process and the protocol connection to it.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/internal/clock"
	znerrors "github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/internal/executor"
	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"github.com/uber/zeta-note-client/src/zn/internal/jsonrpcfx"
	"github.com/uber/zeta-note-client/src/zn/internal/logfilewriter"
	"github.com/uber/zeta-note-client/src/zn/internal/serverinfofile"
	workspaceutils "github.com/uber/zeta-note-client/src/zn/internal/workspace-utils"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=sessionmock/session_mock.go -package=sessionmock . Factory,Session

const (
	_configKeyStopTimeout = "session.stopTimeoutMs"
	_defaultStopTimeout   = 2 * time.Second

	_clientName     = "zn-client"
	_outputSinkName = "server"
	_traceSinkName  = "trace"
)

var (
	errAlreadyStarted = znerrors.New("session already started")
	errStopped        = znerrors.New("session stopped")
)

// Module is the Fx module for this package.
var Module = fx.Provide(NewFactory)

// Session is one server process paired with its protocol connection.
type Session interface {
	ID() uuid.UUID
	Descriptor() entity.InvocationDescriptor
	// OutputPath is the file holding the server's stderr and log messages.
	OutputPath() string
	// Start spawns the process and begins the handshake without waiting for it.
	Start(ctx context.Context) error
	// Stop tears the Session down and releases its sinks. It is safe to call at any point and
	// more than once.
	Stop(ctx context.Context) error
}

// Factory creates Sessions.
type Factory interface {
	New(desc entity.InvocationDescriptor, emit EmitFunc) (Session, error)
}

// Params are inbound parameters to initialize a new Factory.
type Params struct {
	fx.In

	Config         config.Provider
	Executor       executor.Executor
	FS             fs.ZnFS
	ServerInfoFile serverinfofile.ServerInfoFile
	WorkspaceUtils workspaceutils.WorkspaceUtils
	Clock          clock.Clock
	Logger         *zap.SugaredLogger
}

// sink receives server output or protocol trace.
type sink interface {
	io.Writer
	Path() string
	Close() error
}

type factory struct {
	workspaceUtils workspaceutils.WorkspaceUtils
	clock          clock.Clock
	logger         *zap.SugaredLogger
	stopTimeout    time.Duration
	spawn          spawnFunc
	newSink        func(name string) (sink, error)
}

// NewFactory creates a Factory for Sessions that spawn through the executor.
func NewFactory(p Params) (Factory, error) {
	var stopTimeoutMs int
	if err := p.Config.Get(_configKeyStopTimeout).Populate(&stopTimeoutMs); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyStopTimeout, err)
	}
	stopTimeout := _defaultStopTimeout
	if stopTimeoutMs > 0 {
		stopTimeout = time.Duration(stopTimeoutMs) * time.Millisecond
	}

	sinkParams := logfilewriter.Params{FS: p.FS, ServerInfoFile: p.ServerInfoFile}
	return &factory{
		workspaceUtils: p.WorkspaceUtils,
		clock:          p.Clock,
		logger:         p.Logger,
		stopTimeout:    stopTimeout,
		spawn:          execSpawner(p.Executor),
		newSink: func(name string) (sink, error) {
			return logfilewriter.SetupOutputWriter(sinkParams, name)
		},
	}, nil
}

func (f *factory) New(desc entity.InvocationDescriptor, emit EmitFunc) (Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}

	output, err := f.newSink(_outputSinkName)
	if err != nil {
		return nil, fmt.Errorf("creating output sink: %w", err)
	}
	trace, err := f.newSink(_traceSinkName)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("creating trace sink: %w", err), output.Close())
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:             id,
		desc:           desc,
		emit:           emit,
		workspaceUtils: f.workspaceUtils,
		clock:          f.clock,
		logger:         f.logger.With("session", id.String()),
		stopTimeout:    f.stopTimeout,
		spawn:          f.spawn,
		output:         output,
		trace:          trace,
		ctx:            ctx,
		cancel:         cancel,
		exited:         make(chan struct{}),
	}, nil
}

type session struct {
	id             uuid.UUID
	desc           entity.InvocationDescriptor
	emit           EmitFunc
	workspaceUtils workspaceutils.WorkspaceUtils
	clock          clock.Clock
	logger         *zap.SugaredLogger
	stopTimeout    time.Duration
	spawn          spawnFunc
	output         sink
	trace          sink

	// ctx is cancelled when the Session stops and bounds the handshake and request handling.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	stopped bool
	ready   bool
	proc    process
	conn    jsonrpc2.Conn
	folders []protocol.WorkspaceFolder

	exited  chan struct{}
	waitErr error
	wg      sync.WaitGroup

	stopOnce sync.Once
	stopErr  error
}

func (s *session) ID() uuid.UUID {
	return s.id
}

func (s *session) Descriptor() entity.InvocationDescriptor {
	return s.desc
}

func (s *session) OutputPath() string {
	return s.output.Path()
}

func (s *session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errStopped
	}
	if s.started {
		return errAlreadyStarted
	}

	root, err := s.workspaceUtils.GetWorkspaceRoot(ctx)
	if err != nil {
		return fmt.Errorf("getting workspace root: %w", err)
	}

	proc, rwc, err := s.spawn(s.desc, s.output)
	if err != nil {
		return err
	}
	s.logger.Infow("server started", zap.Any("descriptor", s.desc), zap.String("root", root))

	s.started = true
	s.proc = proc
	s.folders = s.workspaceUtils.WorkspaceFolders(root)
	s.conn = jsonrpcfx.NewStreamConn(rwc, s.trace)
	s.conn.Go(s.ctx, s.handle)

	s.wg.Add(3)
	go s.wait()
	go s.monitor()
	go s.handshake(root)
	return nil
}

func (s *session) wait() {
	defer s.wg.Done()
	s.waitErr = s.proc.Wait()
	close(s.exited)
}

// monitor emits the single StoppedEvent of the Session.
func (s *session) monitor() {
	defer s.wg.Done()

	var cause error
	select {
	case <-s.exited:
		cause = s.waitErr
		if err := s.conn.Close(); err != nil {
			s.logger.Debugw("closing server connection", zap.Error(err))
		}
	case <-s.conn.Done():
		select {
		case <-s.exited:
			cause = s.waitErr
		default:
			cause = s.conn.Err()
			// The server is unusable without its connection.
			if err := s.proc.Kill(); err != nil {
				s.logger.Warnw("killing server", zap.Error(err))
			}
		}
	}

	if cause != nil {
		fmt.Fprintf(s.output, "server stopped: %v\n", cause)
	} else {
		fmt.Fprintln(s.output, "server stopped")
	}
	s.logger.Infow("server stopped", zap.Error(cause))
	s.emit(StoppedEvent{ID: s.id, Err: cause})
}

func (s *session) handshake(root string) {
	defer s.wg.Done()

	params := &protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{
			Name: _clientName,
		},
		RootURI:          uri.File(root),
		WorkspaceFolders: s.folders,
		Capabilities: protocol.ClientCapabilities{
			Experimental: entity.ExperimentalCapabilities{
				CodeLensShowReferences: true,
				FollowLinks:            true,
				StatusNotification:     true,
			},
		},
	}

	var result protocol.InitializeResult
	if _, err := s.conn.Call(s.ctx, protocol.MethodInitialize, params, &result); err != nil {
		s.handshakeFailed(fmt.Errorf("initialize: %w", err))
		return
	}
	if err := s.conn.Notify(s.ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		s.handshakeFailed(fmt.Errorf("initialized: %w", err))
		return
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()

	if result.ServerInfo != nil {
		s.logger.Infow("server ready", zap.String("name", result.ServerInfo.Name), zap.String("version", result.ServerInfo.Version))
	} else {
		s.logger.Info("server ready")
	}
	s.emit(ReadyEvent{ID: s.id})
}

// handshakeFailed kills the server so that the monitor reports the Session as stopped.
func (s *session) handshakeFailed(err error) {
	if s.ctx.Err() != nil {
		return
	}
	fmt.Fprintf(s.output, "handshake failed: %v\n", err)
	s.logger.Warnw("handshake failed", zap.Error(err))
	if err := s.proc.Kill(); err != nil {
		s.logger.Warnw("killing server", zap.Error(err))
	}
}

func (s *session) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.stopErr = s.stop(ctx)
	})
	return s.stopErr
}

func (s *session) stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	started, ready := s.started, s.ready
	s.mu.Unlock()

	var errs error
	if started {
		if ready {
			errs = multierr.Append(errs, s.shutdown(ctx))
		}
		s.cancel()

		exitErr := s.awaitExit(ctx)
		errs = multierr.Append(errs, exitErr)
		if exitErr == nil {
			// The monitor sees the exit first and closes the connection itself.
			s.wg.Wait()
		}
		if err := s.conn.Close(); err != nil {
			s.logger.Debugw("closing server connection", zap.Error(err))
		}
	}
	s.cancel()

	errs = multierr.Append(errs, s.output.Close())
	errs = multierr.Append(errs, s.trace.Close())
	s.logger.Infow("session stopped", zap.Error(errs))
	return errs
}

// shutdown asks a live server to exit. A server that already exited or closed its connection is skipped.
func (s *session) shutdown(ctx context.Context) error {
	select {
	case <-s.exited:
		return nil
	case <-s.conn.Done():
		return nil
	default:
	}

	ctx, cancel := context.WithTimeout(ctx, s.stopTimeout)
	defer cancel()

	if _, err := s.conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
		return fmt.Errorf("shutdown request: %w", err)
	}
	if err := s.conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		return fmt.Errorf("exit notification: %w", err)
	}
	return nil
}

// awaitExit gives the process the grace period to exit and kills it afterwards.
func (s *session) awaitExit(ctx context.Context) error {
	select {
	case <-s.exited:
		return nil
	case <-s.clock.After(s.stopTimeout):
	case <-ctx.Done():
	}

	s.logger.Warnw("server did not exit in time, killing", zap.Duration("timeout", s.stopTimeout))
	if err := s.proc.Kill(); err != nil {
		return fmt.Errorf("killing server: %w", err)
	}
	<-s.exited
	return nil
}
