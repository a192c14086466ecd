// Package settings loads the zetaNote settings from configuration and an optional user overlay file, and watches that file for changes.
package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:generate mockgen -destination=settingsmock/settings_mock.go -package=settingsmock . Store

const (
	_configKey = "zetaNote"

	// Editors commonly save in several writes; changes within this window are reported once.
	_debounce = 200 * time.Millisecond
)

// Module provides the settings Store.
var Module = fx.Provide(New)

// Store reads the effective Settings: configuration values overlaid by the user settings file.
type Store interface {
	// Load returns the current effective Settings.
	Load() (entity.Settings, error)
	// Watch calls onChange after the settings file is written, created or removed.
	// The returned function stops watching and waits for pending callbacks.
	Watch(onChange func()) (stop func() error, err error)
}

// Params are the dependencies of Store.
type Params struct {
	fx.In

	Config config.Provider
	FS     fs.ZnFS
	Logger *zap.SugaredLogger
}

type fileConfig struct {
	entity.Settings `yaml:",inline"`
	SettingsFile    string `yaml:"settingsFile"`
}

// overlay distinguishes absent keys from empty ones.
type overlay struct {
	CustomCommand    *string `yaml:"customCommand"`
	CustomCommandDir *string `yaml:"customCommandDir"`
}

type store struct {
	base         entity.Settings
	settingsFile string
	fs           fs.ZnFS
	logger       *zap.SugaredLogger
}

// New creates a Store from the zetaNote configuration key.
func New(p Params) (Store, error) {
	var cfg fileConfig
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}

	s := &store{
		base:   cfg.Settings,
		fs:     p.FS,
		logger: p.Logger,
	}
	if cfg.SettingsFile != "" {
		abs, err := filepath.Abs(cfg.SettingsFile)
		if err != nil {
			return nil, fmt.Errorf("resolving settings file: %w", err)
		}
		s.settingsFile = abs
	}
	return s, nil
}

func (s *store) Load() (entity.Settings, error) {
	result := s.base
	if s.settingsFile == "" {
		return result, nil
	}

	exists, err := s.fs.FileExists(s.settingsFile)
	if err != nil {
		return result, fmt.Errorf("checking settings file: %w", err)
	}
	if !exists {
		return result, nil
	}

	data, err := s.fs.ReadFile(s.settingsFile)
	if err != nil {
		return result, fmt.Errorf("reading settings file: %w", err)
	}

	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return result, fmt.Errorf("parsing settings file %q: %w", s.settingsFile, err)
	}
	if o.CustomCommand != nil {
		result.CustomCommand = *o.CustomCommand
	}
	if o.CustomCommandDir != nil {
		result.CustomCommandDir = *o.CustomCommandDir
	}
	return result, nil
}

func (s *store) Watch(onChange func()) (func() error, error) {
	if s.settingsFile == "" {
		return func() error { return nil }, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating settings watcher: %w", err)
	}

	// Watch the directory so that atomic saves (write temp, rename over) are observed.
	dir := filepath.Dir(s.settingsFile)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %q: %w", dir, err)
	}
	s.logger.Infow("watching settings file", "path", s.settingsFile)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.watchLoop(watcher, onChange)
	}()

	var once sync.Once
	var closeErr error
	return func() error {
		once.Do(func() {
			closeErr = watcher.Close()
			wg.Wait()
		})
		return closeErr
	}, nil
}

func (s *store) watchLoop(watcher *fsnotify.Watcher, onChange func()) {
	timer := time.NewTimer(_debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.settingsFile {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(_debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warnw("settings watcher", zap.Error(err))
		case <-timer.C:
			s.logger.Infow("settings file changed", "path", s.settingsFile)
			onChange()
		}
	}
}
