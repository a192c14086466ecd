package fs

import (
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/fx"
)

//go:generate mockgen -destination=fsmock/fs_mock.go -package=fsmock . ZnFS

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ZnFS wraps the filesystem operations used by zn-client so that the binary storage and
// log sinks can be exercised without touching disk.
type ZnFS interface {
	UserCacheDir() (string, error)
	MkdirAll(path string) error
	WorkspaceRoot(path string) (string, error)
	DirExists(path string) (bool, error)
	FileExists(path string) (bool, error)
	ReadFile(name string) ([]byte, error)
	TempFile(dir, pattern string) (*os.File, error)
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error
	Remove(name string) error
}

type fsImpl struct{}

// New creates a new ZnFS.
func New() ZnFS {
	return fsImpl{}
}

// UserCacheDir returns the user's cache directory.
func (fsImpl) UserCacheDir() (string, error) { return os.UserCacheDir() }

// MkdirAll creates a directory and all its parents.
func (fsImpl) MkdirAll(path string) error { return os.MkdirAll(path, os.ModePerm) }

// WorkspaceRoot returns the git toplevel containing path.
func (fsImpl) WorkspaceRoot(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = path
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (fsImpl) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// TempFile creates a new file in dir. Callers that later rename it must keep dir on the
// same filesystem as the destination.
func (fsImpl) TempFile(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

func (fsImpl) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (fsImpl) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

func (fsImpl) Remove(name string) error {
	return os.Remove(name)
}
