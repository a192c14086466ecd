package workspaceutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=workspaceutilsmock/utils_mock.go -package=workspaceutilsmock . WorkspaceUtils

const _configKeyWorkspaceRoot = "zetaNote.workspaceRoot"

// Module provides a new WorkspaceUtils.
var Module = fx.Provide(New)

// WorkspaceUtils determines the directory the language server is rooted at.
type WorkspaceUtils interface {
	GetWorkspaceRoot(ctx context.Context) (string, error)
	WorkspaceFolders(root string) []protocol.WorkspaceFolder
}

// Params are the parameters required to create a new WorkspaceUtils.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	FS     fs.ZnFS
}

type workspaceUtilsImpl struct {
	configuredRoot string
	logger         *zap.SugaredLogger
	fs             fs.ZnFS
	getwd          func() (string, error)
}

// New creates a new WorkspaceUtils.
func New(p Params) (WorkspaceUtils, error) {
	c := &workspaceUtilsImpl{
		logger: p.Logger,
		fs:     p.FS,
		getwd:  os.Getwd,
	}
	if err := p.Config.Get(_configKeyWorkspaceRoot).Populate(&c.configuredRoot); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyWorkspaceRoot, err)
	}
	return c, nil
}

// GetWorkspaceRoot returns the configured root, else the git toplevel of the working
// directory, else the working directory itself.
func (c *workspaceUtilsImpl) GetWorkspaceRoot(ctx context.Context) (string, error) {
	if c.configuredRoot != "" {
		root, err := filepath.Abs(c.configuredRoot)
		if err != nil {
			return "", fmt.Errorf("resolving workspace root: %w", err)
		}
		exists, err := c.fs.DirExists(root)
		if err != nil {
			return "", fmt.Errorf("checking workspace root: %w", err)
		}
		if !exists {
			return "", fmt.Errorf("workspace root %q is not a directory", root)
		}
		return root, nil
	}

	wd, err := c.getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	root, err := c.fs.WorkspaceRoot(wd)
	if err != nil || root == "" {
		c.logger.Infow("not inside a git repository, using working directory as workspace root", "dir", wd)
		return wd, nil
	}
	return root, nil
}

// WorkspaceFolders returns the single workspace folder advertised to the server.
func (c *workspaceUtilsImpl) WorkspaceFolders(root string) []protocol.WorkspaceFolder {
	return []protocol.WorkspaceFolder{
		{
			URI:  string(uri.File(root)),
			Name: filepath.Base(root),
		},
	}
}
