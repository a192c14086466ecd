package serverinfofile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=serverinfofilemock/server_info_file_mock.go -package=serverinfofilemock . ServerInfoFile

const _configKeyInfoFile = "serverInfoFilePath"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ServerInfoFile manages a single JSON file that editor hosts and scripts read to discover the
// daemon's address, its status text and the location of the current Session's log sinks.
type ServerInfoFile interface {
	UpdateField(key string, value string) error
	DeleteField(key string) error
}

type module struct {
	infofile     string
	logger       *zap.SugaredLogger
	fileContents map[string]string
	mu           sync.Mutex
}

// Params define values to be used by ServerInfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a new ServerInfoFile which manages contents of a single server info file.
func New(p Params) (ServerInfoFile, error) {
	m := module{
		logger:       p.Logger,
		fileContents: make(map[string]string),
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: m.OnStop,
	})

	return &m, nil
}

// OnStop removes the info file so that hosts do not connect to a stopped daemon.
func (m *module) OnStop(ctx context.Context) error {
	if m.infofile == "" {
		return nil
	}
	if err := os.Remove(m.infofile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UpdateField sets key to value and rewrites the file.
func (m *module) UpdateField(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fileContents[key] = value
	if err := m.writeLocked(); err != nil {
		return err
	}
	m.logger.Debugw("server info saved", zap.String("file", m.infofile), zap.String(key, value))
	return nil
}

// DeleteField removes key and rewrites the file. Deleting an absent key is not an error.
func (m *module) DeleteField(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fileContents[key]; !ok {
		return nil
	}
	delete(m.fileContents, key)
	return m.writeLocked()
}

// writeLocked replaces the info file in a single rename so readers never see a partial document.
func (m *module) writeLocked() error {
	jsonOutput, err := json.Marshal(m.fileContents)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	dir := filepath.Dir(m.infofile)
	tmp, err := os.CreateTemp(dir, ".server-info-")
	if err != nil {
		return fmt.Errorf("creating info file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(jsonOutput); err != nil {
		tmp.Close()
		return fmt.Errorf("writing info file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.infofile); err != nil {
		return fmt.Errorf("replacing info file: %w", err)
	}
	return nil
}

func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyInfoFile)
	if err := val.Populate(&m.infofile); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyInfoFile, err)
	}

	if m.infofile == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyInfoFile)
	}

	if err := os.MkdirAll(filepath.Dir(m.infofile), os.ModePerm); err != nil {
		return fmt.Errorf("creating info file directory: %w", err)
	}

	return nil
}
