package resolver

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/zeta-note-client/src/zn/entity"
	znerrors "github.com/uber/zeta-note-client/src/zn/internal/errors"
	"github.com/uber/zeta-note-client/src/zn/internal/executor/executormock"
	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"github.com/uber/zeta-note-client/src/zn/internal/fs/fsmock"
	"go.uber.org/config"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newConfigProvider(t *testing.T, yaml string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func releaseYAML(baseURL, storageDir string) string {
	return "release:\n" +
		"  baseURL: " + baseURL + "\n" +
		"  version: \"2022-03-01\"\n" +
		"  storageDir: " + storageDir + "\n"
}

// newTestResolver builds a resolver pinned to linux/amd64 so asset names are stable on every CI host.
func newTestResolver(t *testing.T, p Params) *resolver {
	if p.Logger == nil {
		p.Logger = zap.NewNop().Sugar()
	}
	if p.Stats == nil {
		p.Stats = tally.NoopScope
	}
	r, err := New(p)
	require.NoError(t, err)
	res := r.(*resolver)
	res.goos = "linux"
	res.goarch = "amd64"
	return res
}

// renameCheckFS asserts that the final binary path never exists before the rename that creates it.
type renameCheckFS struct {
	fs.ZnFS
	t       *testing.T
	renames int
}

func (f *renameCheckFS) Rename(oldpath, newpath string) error {
	_, err := os.Stat(newpath)
	assert.True(f.t, os.IsNotExist(err), "target must not exist before rename")
	f.renames++
	return f.ZnFS.Rename(oldpath, newpath)
}

type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("success", func(t *testing.T) {
		r, err := New(Params{
			Config:   newConfigProvider(t, releaseYAML("https://example.com/releases", t.TempDir())),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
			Logger:   zap.NewNop().Sugar(),
			Stats:    tally.NoopScope,
		})
		require.NoError(t, err)
		res := r.(*resolver)
		assert.Equal(t, "2022-03-01", res.release.Version)
		assert.Same(t, http.DefaultClient, res.client)
	})

	t.Run("download disabled", func(t *testing.T) {
		r, err := New(Params{
			Config:   newConfigProvider(t, "service:\n  name: zn-client\n"),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
			Logger:   zap.NewNop().Sugar(),
			Stats:    tally.NoopScope,
		})
		require.NoError(t, err)
		assert.Empty(t, r.(*resolver).release.BaseURL)
	})

	t.Run("shipped defaults enable the download", func(t *testing.T) {
		provider, err := config.NewYAML(config.Expand(os.LookupEnv), config.File(filepath.Join("..", "..", "config", "base.yaml")))
		require.NoError(t, err)
		r, err := New(Params{
			Config:   provider,
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
			Logger:   zap.NewNop().Sugar(),
			Stats:    tally.NoopScope,
		})
		require.NoError(t, err)
		res := r.(*resolver)
		assert.Equal(t, "https://github.com/artempyanykh/zeta-note/releases/download", res.release.BaseURL)
		assert.NotEmpty(t, res.release.Version)
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := New(Params{
			Config:   newConfigProvider(t, "release:\n  baseURL: https://example.com\n"),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
			Logger:   zap.NewNop().Sugar(),
			Stats:    tally.NoopScope,
		})
		assert.ErrorContains(t, err, `missing field "release.version"`)
	})
}

func TestBinaryName(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "windows", want: "zeta-note.exe"},
		{goos: "darwin", want: "zeta-note"},
		{goos: "linux", want: "zeta-note"},
		{goos: "plan9", wantErr: true},
		{goos: "freebsd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := BinaryName(tt.goos)
			if tt.wantErr {
				assert.True(t, znerrors.IsUnsupportedPlatform(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{goos: "linux", goarch: "amd64", want: "zeta-note-linux"},
		{goos: "linux", goarch: "arm64", want: "zeta-note-linux-arm64"},
		{goos: "darwin", goarch: "amd64", want: "zeta-note-macos"},
		{goos: "darwin", goarch: "arm64", want: "zeta-note-macos"},
		{goos: "windows", goarch: "amd64", want: "zeta-note.exe"},
		{goos: "linux", goarch: "386", wantErr: true},
		{goos: "windows", goarch: "arm64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := AssetName(tt.goos, tt.goarch)
			if tt.wantErr {
				assert.True(t, znerrors.IsUnsupportedPlatform(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("custom command short-circuits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		// No expectations: any LookPath or filesystem call fails the test.
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, releaseYAML("https://example.com", t.TempDir())),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
		})

		desc, err := r.Resolve(ctx, entity.Settings{CustomCommand: "run-server --flag", CustomCommandDir: "/tmp/x"}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.InvocationDescriptor{Command: "run-server", Args: []string{"--flag"}, Dir: "/tmp/x"}, desc)
	})

	t.Run("custom command without dir", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, releaseYAML("https://example.com", t.TempDir())),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsmock.NewMockZnFS(ctrl),
		})

		desc, err := r.Resolve(ctx, entity.Settings{CustomCommand: "  zeta-note   server\t--verbose "}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.InvocationDescriptor{Command: "zeta-note", Args: []string{"server", "--verbose"}}, desc)
	})

	t.Run("search path short-circuits download", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, releaseYAML("https://example.com", t.TempDir())),
			Executor: executorMock,
			FS:       fsmock.NewMockZnFS(ctrl),
		})
		executorMock.EXPECT().LookPath(r.binary).Return("/usr/local/bin/zeta-note", nil)

		desc, err := r.Resolve(ctx, entity.Settings{CustomCommand: "   "}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.InvocationDescriptor{Command: "/usr/local/bin/zeta-note"}, desc)
		assert.Empty(t, desc.Args)
	})

	t.Run("stored binary is reused without network", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		fsMock := fsmock.NewMockZnFS(ctrl)
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, releaseYAML("http://127.0.0.1:1", "/store")),
			Executor: executorMock,
			FS:       fsMock,
			HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				t.Fatal("no request expected")
				return nil, nil
			})},
		})
		target := filepath.Join("/store", "2022-03-01", r.binary)
		executorMock.EXPECT().LookPath(r.binary).Return("", exec.ErrNotFound)
		fsMock.EXPECT().FileExists(target).Return(true, nil)

		desc, err := r.Resolve(ctx, entity.Settings{}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.InvocationDescriptor{Command: target}, desc)
	})

	t.Run("default storage dir is the user cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsMock := fsmock.NewMockZnFS(ctrl)
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, releaseYAML("https://example.com", "\"\"")),
			Executor: executormock.NewMockExecutor(ctrl),
			FS:       fsMock,
		})
		fsMock.EXPECT().UserCacheDir().Return("/home/me/.cache", nil)

		dir, err := r.storageDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/me/.cache", "zn-client", "2022-03-01"), dir)
	})

	t.Run("nothing available is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		core, logs := observer.New(zap.WarnLevel)
		r := newTestResolver(t, Params{
			Config:   newConfigProvider(t, "service:\n  name: zn-client\n"),
			Executor: executorMock,
			FS:       fsmock.NewMockZnFS(ctrl),
			Logger:   zap.New(core).Sugar(),
		})
		executorMock.EXPECT().LookPath(r.binary).Return("", exec.ErrNotFound)

		_, err := r.Resolve(ctx, entity.Settings{}, nil)
		assert.True(t, znerrors.IsServerNotFound(err))
		assert.Equal(t, 1, logs.FilterMessage("managed server binary unavailable").Len())
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	payload := bytes.Repeat([]byte("z"), 100*1024)

	t.Run("success", func(t *testing.T) {
		var requested string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requested = req.URL.Path
			w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
			w.Write(payload)
		}))
		defer srv.Close()

		ctrl := gomock.NewController(t)
		executorMock := executormock.NewMockExecutor(ctrl)
		storage := t.TempDir()
		checkFS := &renameCheckFS{ZnFS: fs.New(), t: t}
		stats := tally.NewTestScope("testing", nil)
		r := newTestResolver(t, Params{
			Config:     newConfigProvider(t, releaseYAML(srv.URL+"/releases/", storage)),
			Executor:   executorMock,
			FS:         checkFS,
			HTTPClient: srv.Client(),
			Stats:      stats,
		})
		target := filepath.Join(storage, "2022-03-01", r.binary)
		executorMock.EXPECT().LookPath(r.binary).Return("", exec.ErrNotFound)

		var reported []int
		desc, err := r.Resolve(ctx, entity.Settings{}, func(pct int) {
			_, statErr := os.Stat(target)
			assert.True(t, os.IsNotExist(statErr), "partial binary visible at %d%%", pct)
			reported = append(reported, pct)
		})
		require.NoError(t, err)

		assert.Equal(t, entity.InvocationDescriptor{Command: target}, desc)
		assert.Equal(t, "/releases/2022-03-01/zeta-note-linux", requested)
		assert.Equal(t, 1, checkFS.renames)

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
		if info, err := os.Stat(target); assert.NoError(t, err) {
			assert.NotZero(t, info.Mode().Perm()&0o100)
		}

		require.NotEmpty(t, reported)
		assert.Equal(t, 100, reported[len(reported)-1])
		for i := 1; i < len(reported); i++ {
			assert.Greater(t, reported[i], reported[i-1])
		}

		entries, err := os.ReadDir(filepath.Dir(target))
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		counters := stats.Snapshot().Counters()
		require.Contains(t, counters, "testing.resolver.download.success+")
		assert.EqualValues(t, 1, counters["testing.resolver.download.success+"].Value())
	})

	failures := []struct {
		name    string
		handler http.HandlerFunc
		stage   znerrors.DownloadStage
	}{
		{
			name: "not found status",
			handler: func(w http.ResponseWriter, req *http.Request) {
				http.NotFound(w, req)
			},
			stage: znerrors.DownloadStageRequest,
		},
		{
			name: "missing content-length",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.Write(payload[:10])
				w.(http.Flusher).Flush()
				w.Write(payload[10:20])
			},
			stage: znerrors.DownloadStageHeaders,
		},
		{
			name: "zero content-length",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Length", "0")
			},
			stage: znerrors.DownloadStageHeaders,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ctrl := gomock.NewController(t)
			executorMock := executormock.NewMockExecutor(ctrl)
			storage := t.TempDir()
			stats := tally.NewTestScope("testing", nil)
			r := newTestResolver(t, Params{
				Config:     newConfigProvider(t, releaseYAML(srv.URL, storage)),
				Executor:   executorMock,
				FS:         fs.New(),
				HTTPClient: srv.Client(),
				Stats:      stats,
			})
			executorMock.EXPECT().LookPath(r.binary).Return("", exec.ErrNotFound)

			_, err := r.Resolve(ctx, entity.Settings{}, func(int) {})
			require.True(t, znerrors.IsServerNotFound(err))
			var de *znerrors.DownloadError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.stage, de.Stage)

			entries, err := os.ReadDir(filepath.Join(storage, "2022-03-01"))
			require.NoError(t, err)
			assert.Empty(t, entries, "no partial state may be left behind")

			counters := stats.Snapshot().Counters()
			require.Contains(t, counters, "testing.resolver.download.failure+")
			assert.EqualValues(t, 1, counters["testing.resolver.download.failure+"].Value())
		})
	}

	t.Run("rename failure removes temp file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fsMock := fsmock.NewMockZnFS(ctrl)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Length", "4")
			w.Write([]byte("zeta"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		r := newTestResolver(t, Params{
			Config:     newConfigProvider(t, releaseYAML(srv.URL, "/unused")),
			Executor:   executormock.NewMockExecutor(ctrl),
			FS:         fsMock,
			HTTPClient: srv.Client(),
		})
		tmp, err := os.CreateTemp(dir, "partial")
		require.NoError(t, err)
		target := filepath.Join(dir, r.binary)

		fsMock.EXPECT().TempFile(dir, gomock.Any()).Return(tmp, nil)
		fsMock.EXPECT().Chmod(tmp.Name(), os.FileMode(_binaryMode)).Return(nil)
		fsMock.EXPECT().Rename(tmp.Name(), target).Return(znerrors.New("cross-device link"))
		fsMock.EXPECT().Remove(tmp.Name()).DoAndReturn(os.Remove)

		err = r.download(ctx, srv.URL+"/asset", dir, target, nil)
		var de *znerrors.DownloadError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, znerrors.DownloadStageRename, de.Stage)
		_, statErr := os.Stat(tmp.Name())
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestCopyWithProgress(t *testing.T) {
	t.Run("reports only on percentage increase", func(t *testing.T) {
		src := &chunkReader{chunks: [][]byte{
			bytes.Repeat([]byte("a"), 330),
			bytes.Repeat([]byte("b"), 4),
			bytes.Repeat([]byte("c"), 666),
		}}
		var dst bytes.Buffer
		var reported []int

		n, err := copyWithProgress(&dst, src, 1000, func(pct int) { reported = append(reported, pct) })
		require.NoError(t, err)
		assert.EqualValues(t, 1000, n)
		assert.Equal(t, 1000, dst.Len())
		assert.Equal(t, []int{33, 100}, reported)
	})

	t.Run("nil progress", func(t *testing.T) {
		var dst bytes.Buffer
		n, err := copyWithProgress(&dst, strings.NewReader("zeta"), 4, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 4, n)
	})

	t.Run("oversized body caps at 100", func(t *testing.T) {
		var reported []int
		_, err := copyWithProgress(&bytes.Buffer{}, strings.NewReader("zeta-note"), 4, func(pct int) {
			reported = append(reported, pct)
		})
		require.NoError(t, err)
		assert.Equal(t, []int{100}, reported)
	})
}

func TestContentLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr string
	}{
		{name: "valid", value: "1024", want: 1024},
		{name: "missing", value: "", wantErr: "missing content-length"},
		{name: "not a number", value: "lots", wantErr: `invalid content-length "lots"`},
		{name: "negative", value: "-1", wantErr: `invalid content-length "-1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set("Content-Length", tt.value)
			}
			got, err := contentLength(h)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
