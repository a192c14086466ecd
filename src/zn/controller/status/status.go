// Package status renders the server Status and keeps the status indicator of every editor host current.
package status

import (
	"context"
	"fmt"
	"sync"

	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"github.com/uber/zeta-note-client/src/zn/internal/serverinfofile"
	"github.com/uber/zeta-note-client/src/zn/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=statusmock/status_mock.go -package=statusmock . Item

const _infoFileKey = "status"

// Indicator texts.
const (
	TextInit = "? ZN"
	TextDead = "☠️ ZN"

	_textOKFormat = "✓ ZN (%d)"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Render returns the indicator text for s.
func Render(s entity.Status) string {
	switch s.State {
	case entity.RunStateInit:
		return TextInit
	case entity.RunStateOK:
		return fmt.Sprintf(_textOKFormat, s.Count)
	case entity.RunStateDead:
		return TextDead
	default:
		// Not reachable through decoding, which rejects unknown states.
		return TextDead
	}
}

// Item is the single visible status indicator.
type Item interface {
	// Update replaces the shown Status.
	Update(ctx context.Context, s entity.Status)
	Show(ctx context.Context)
	Hide(ctx context.Context)
	// Status returns the last shown Status.
	Status() entity.Status
	// StatusBar returns the indicator as sent to hosts.
	StatusBar() entity.StatusBarParams
}

// Params are inbound parameters to initialize a new Item.
type Params struct {
	fx.In

	EditorGateway  editor.Gateway
	ServerInfoFile serverinfofile.ServerInfoFile
	Logger         *zap.SugaredLogger
}

type item struct {
	editorGateway  editor.Gateway
	serverInfoFile serverinfofile.ServerInfoFile
	logger         *zap.SugaredLogger

	mu      sync.Mutex
	status  entity.Status
	visible bool

	// publishMu keeps hosts and the info file in the same order as state changes.
	publishMu sync.Mutex
}

// New creates a hidden Item showing DefaultStatus.
func New(p Params) Item {
	return &item{
		editorGateway:  p.EditorGateway,
		serverInfoFile: p.ServerInfoFile,
		logger:         p.Logger,
		status:         entity.DefaultStatus,
	}
}

func (i *item) Update(ctx context.Context, s entity.Status) {
	i.set(ctx, func() {
		i.status = s
	})
}

func (i *item) Show(ctx context.Context) {
	i.set(ctx, func() {
		i.visible = true
	})
}

func (i *item) Hide(ctx context.Context) {
	i.set(ctx, func() {
		i.visible = false
	})
}

func (i *item) Status() entity.Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

func (i *item) StatusBar() entity.StatusBarParams {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.statusBarLocked()
}

func (i *item) statusBarLocked() entity.StatusBarParams {
	return mapper.StatusToStatusBar(i.status, Render(i.status), i.visible)
}

func (i *item) set(ctx context.Context, change func()) {
	i.publishMu.Lock()
	defer i.publishMu.Unlock()

	i.mu.Lock()
	change()
	params := i.statusBarLocked()
	i.mu.Unlock()

	i.publish(ctx, &params)
}

// publish failures are logged only: a host that missed an update gets the next one.
func (i *item) publish(ctx context.Context, params *entity.StatusBarParams) {
	text := params.Text
	if !params.Visible {
		text = ""
	}
	var err error
	if text == "" {
		err = i.serverInfoFile.DeleteField(_infoFileKey)
	} else {
		err = i.serverInfoFile.UpdateField(_infoFileKey, text)
	}
	if err != nil {
		i.logger.Warnw("saving status to server info file", zap.Error(err))
	}

	if err := i.editorGateway.BroadcastStatusBar(ctx, params); err != nil {
		i.logger.Warnw("broadcasting status", zap.Error(err))
	}
	i.logger.Debugw("status updated", zap.String("text", params.Text), zap.Bool("visible", params.Visible))
}
