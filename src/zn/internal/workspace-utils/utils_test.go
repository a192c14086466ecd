package workspaceutils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/zeta-note-client/src/zn/internal/fs/fsmock"
	"go.uber.org/config"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("valid", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("zetaNote:\n  workspaceRoot: /notes")))
		require.NoError(t, err)
		u, err := New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), FS: fsmock.NewMockZnFS(ctrl)})
		require.NoError(t, err)
		assert.Equal(t, "/notes", u.(*workspaceUtilsImpl).configuredRoot)
	})

	t.Run("malformed", func(t *testing.T) {
		cfg, err := config.NewYAML(config.Source(strings.NewReader("zetaNote:\n  workspaceRoot:\n    a: b")))
		require.NoError(t, err)
		_, err = New(Params{Config: cfg, Logger: zap.NewNop().Sugar(), FS: fsmock.NewMockZnFS(ctrl)})
		assert.Error(t, err)
	})
}

func TestGetWorkspaceRoot(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		configured string
		setup      func(fsMock *fsmock.MockZnFS)
		getwdErr   error
		want       string
		wantErr    string
	}{
		{
			name:       "configured root",
			configured: "/notes",
			setup: func(fsMock *fsmock.MockZnFS) {
				fsMock.EXPECT().DirExists("/notes").Return(true, nil)
			},
			want: "/notes",
		},
		{
			name:       "configured root missing",
			configured: "/notes",
			setup: func(fsMock *fsmock.MockZnFS) {
				fsMock.EXPECT().DirExists("/notes").Return(false, nil)
			},
			wantErr: "is not a directory",
		},
		{
			name:       "configured root stat failure",
			configured: "/notes",
			setup: func(fsMock *fsmock.MockZnFS) {
				fsMock.EXPECT().DirExists("/notes").Return(false, errors.New("io"))
			},
			wantErr: "checking workspace root",
		},
		{
			name: "git toplevel",
			setup: func(fsMock *fsmock.MockZnFS) {
				fsMock.EXPECT().WorkspaceRoot("/home/user/notes/daily").Return("/home/user/notes", nil)
			},
			want: "/home/user/notes",
		},
		{
			name: "not a repository",
			setup: func(fsMock *fsmock.MockZnFS) {
				fsMock.EXPECT().WorkspaceRoot("/home/user/notes/daily").Return("", errors.New("exit status 128"))
			},
			want: "/home/user/notes/daily",
		},
		{
			name:     "no working directory",
			setup:    func(fsMock *fsmock.MockZnFS) {},
			getwdErr: errors.New("removed"),
			wantErr:  "getting working directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fsMock := fsmock.NewMockZnFS(ctrl)
			tt.setup(fsMock)

			c := workspaceUtilsImpl{
				configuredRoot: tt.configured,
				logger:         zap.NewNop().Sugar(),
				fs:             fsMock,
				getwd: func() (string, error) {
					return "/home/user/notes/daily", tt.getwdErr
				},
			}

			got, err := c.GetWorkspaceRoot(ctx)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkspaceFolders(t *testing.T) {
	c := workspaceUtilsImpl{}
	folders := c.WorkspaceFolders("/home/user/notes")
	require.Len(t, folders, 1)
	assert.Equal(t, "file:///home/user/notes", folders[0].URI)
	assert.Equal(t, "notes", folders[0].Name)
}
