// Package resolver decides how to obtain a runnable zeta-note server command.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/entity"
	znerrors "github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/internal/executor"
	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=resolvermock/resolver_mock.go -package=resolvermock . Resolver

const (
	_configKeyRelease = "release"
	_serverName       = "zeta-note"
	_storageDirName   = "zn-client"
	_binaryMode       = 0o755
	_copyBufferSize   = 32 * 1024
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ProgressFunc receives the download percentage, 1 to 100, each time it increases.
type ProgressFunc func(percentage int)

// Resolver produces an InvocationDescriptor for the server.
type Resolver interface {
	// Resolve tries the custom command, then the search path, then the managed download.
	// Every failure is reported as *errors.ServerNotFoundError.
	Resolve(ctx context.Context, settings entity.Settings, progress ProgressFunc) (entity.InvocationDescriptor, error)
}

// Params are inbound parameters to initialize a new Resolver.
type Params struct {
	fx.In

	Config     config.Provider
	Executor   executor.Executor
	FS         fs.ZnFS
	Logger     *zap.SugaredLogger
	Stats      tally.Scope
	HTTPClient *http.Client `optional:"true"`
}

type releaseConfig struct {
	// BaseURL is the prefix of every release asset. Empty disables the managed download.
	BaseURL string `yaml:"baseURL"`
	// Version is the pinned release tag.
	Version string `yaml:"version"`
	// StorageDir overrides the user cache directory as the parent of per-version storage.
	StorageDir string `yaml:"storageDir"`
}

type resolver struct {
	executor executor.Executor
	fs       fs.ZnFS
	logger   *zap.SugaredLogger
	client   *http.Client
	release  releaseConfig
	stats    tally.Scope
	goos     string
	goarch   string
	binary   string
}

// New creates a Resolver for the running platform. An unsupported operating system is a fatal
// configuration error.
func New(p Params) (Resolver, error) {
	binary, err := BinaryName(runtime.GOOS)
	if err != nil {
		return nil, err
	}

	var release releaseConfig
	if err := p.Config.Get(_configKeyRelease).Populate(&release); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyRelease, err)
	}
	if release.BaseURL != "" && release.Version == "" {
		return nil, fmt.Errorf("missing field %q in config", _configKeyRelease+".version")
	}

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &resolver{
		executor: p.Executor,
		fs:       p.FS,
		logger:   p.Logger,
		client:   client,
		release:  release,
		stats:    p.Stats.SubScope("resolver").SubScope("download"),
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		binary:   binary,
	}, nil
}

// BinaryName returns the server executable name for goos.
func BinaryName(goos string) (string, error) {
	switch goos {
	case "windows":
		return _serverName + ".exe", nil
	case "darwin", "linux":
		return _serverName, nil
	default:
		return "", &znerrors.UnsupportedPlatformError{Platform: goos}
	}
}

// AssetName returns the release asset published for goos/goarch.
func AssetName(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return _serverName + "-linux", nil
	case goos == "linux" && goarch == "arm64":
		return _serverName + "-linux-arm64", nil
	case goos == "darwin":
		return _serverName + "-macos", nil
	case goos == "windows" && goarch == "amd64":
		return _serverName + ".exe", nil
	default:
		return "", &znerrors.UnsupportedPlatformError{Platform: goos + "/" + goarch}
	}
}

func (r *resolver) Resolve(ctx context.Context, settings entity.Settings, progress ProgressFunc) (entity.InvocationDescriptor, error) {
	if desc, ok := fromSettings(settings); ok {
		r.logger.Infow("using custom server command", zap.Any("descriptor", desc))
		return desc, nil
	}

	path, err := r.executor.LookPath(r.binary)
	if err == nil {
		return entity.InvocationDescriptor{Command: path}, nil
	}

	path, err = r.managedBinary(ctx, progress)
	if err != nil {
		r.logger.Warnw("managed server binary unavailable", zap.Error(err))
		return entity.InvocationDescriptor{}, &znerrors.ServerNotFoundError{Binary: r.binary, Cause: err}
	}
	return entity.InvocationDescriptor{Command: path}, nil
}

// fromSettings splits the custom command on whitespace. A blank command is treated as unset.
func fromSettings(settings entity.Settings) (entity.InvocationDescriptor, bool) {
	fields := strings.Fields(settings.CustomCommand)
	if len(fields) == 0 {
		return entity.InvocationDescriptor{}, false
	}
	return entity.InvocationDescriptor{
		Command: fields[0],
		Args:    fields[1:],
		Dir:     settings.CustomCommandDir,
	}, true
}

func (r *resolver) storageDir() (string, error) {
	parent := r.release.StorageDir
	if parent == "" {
		cache, err := r.fs.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating user cache dir: %w", err)
		}
		parent = filepath.Join(cache, _storageDirName)
	}
	return filepath.Join(parent, r.release.Version), nil
}

// managedBinary returns the stored binary for the pinned version, downloading it first if needed.
func (r *resolver) managedBinary(ctx context.Context, progress ProgressFunc) (string, error) {
	if r.release.BaseURL == "" {
		return "", znerrors.New("managed download disabled")
	}

	dir, err := r.storageDir()
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, r.binary)

	exists, err := r.fs.FileExists(target)
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", target, err)
	}
	if exists {
		r.logger.Infow("reusing managed server binary", zap.String("path", target))
		return target, nil
	}

	asset, err := AssetName(r.goos, r.goarch)
	if err != nil {
		return "", err
	}
	if err := r.fs.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("creating storage dir: %w", err)
	}

	url := strings.TrimSuffix(r.release.BaseURL, "/") + "/" + r.release.Version + "/" + asset
	r.logger.Infow("downloading server binary", zap.String("url", url), zap.String("target", target))
	if err := r.download(ctx, url, dir, target, progress); err != nil {
		r.stats.Counter("failure").Inc(1)
		return "", err
	}
	r.stats.Counter("success").Inc(1)
	return target, nil
}

// download streams url into a temp file next to target and renames it into place, so target is
// either absent or complete.
func (r *resolver) download(ctx context.Context, url, dir, target string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageRequest, Err: err}
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageRequest, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageRequest, Err: fmt.Errorf("unexpected status %q", resp.Status)}
	}
	total, err := contentLength(resp.Header)
	if err != nil {
		return &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageHeaders, Err: err}
	}

	tmp, err := r.fs.TempFile(dir, "."+r.binary+"-*.download")
	if err != nil {
		return &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageWrite, Err: err}
	}
	tmpName := tmp.Name()

	written, copyErr := copyWithProgress(tmp, resp.Body, total, progress)
	if err := multierr.Combine(copyErr, tmp.Close()); err != nil {
		return r.discard(tmpName, &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageWrite, Err: err})
	}
	if written != total {
		return r.discard(tmpName, &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageWrite, Err: fmt.Errorf("received %d of %d bytes", written, total)})
	}
	if err := r.fs.Chmod(tmpName, _binaryMode); err != nil {
		return r.discard(tmpName, &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageWrite, Err: err})
	}
	if err := r.fs.Rename(tmpName, target); err != nil {
		return r.discard(tmpName, &znerrors.DownloadError{URL: url, Stage: znerrors.DownloadStageRename, Err: err})
	}
	return nil
}

// discard removes a partial download and returns cause.
func (r *resolver) discard(name string, cause error) error {
	if err := r.fs.Remove(name); err != nil {
		r.logger.Warnw("removing partial download", zap.String("path", name), zap.Error(err))
	}
	return cause
}

func contentLength(h http.Header) (int64, error) {
	raw := h.Get("Content-Length")
	if raw == "" {
		return 0, znerrors.New("missing content-length")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid content-length %q", raw)
	}
	return n, nil
}

// copyWithProgress copies src to dst, calling progress only when the integer percentage of total
// grows.
func copyWithProgress(dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, _copyBufferSize)
	var written int64
	last := 0
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if pct := percentage(written, total); pct > last {
				last = pct
				if progress != nil {
					progress(pct)
				}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

func percentage(written, total int64) int {
	if written >= total {
		return 100
	}
	return int(written * 100 / total)
}
