package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/uber/zeta-note-client/src/zn/entity"
	"github.com/uber/zeta-note-client/src/zn/internal/executor"
	"github.com/uber/zeta-note-client/src/zn/internal/jsonrpcfx"
)

// process is a started server.
type process interface {
	// Wait blocks until the process exits.
	Wait() error
	// Kill ends the process immediately.
	Kill() error
}

// spawnFunc starts the server described by desc with stderr attached to the given writer, and
// returns its stdio as one stream.
type spawnFunc func(desc entity.InvocationDescriptor, stderr io.Writer) (process, io.ReadWriteCloser, error)

type execProcess struct {
	cmd *exec.Cmd
}

func (p execProcess) Wait() error {
	return p.cmd.Wait()
}

func (p execProcess) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func execSpawner(e executor.Executor) spawnFunc {
	return func(desc entity.InvocationDescriptor, stderr io.Writer) (process, io.ReadWriteCloser, error) {
		cmd := exec.Command(desc.Command, desc.Args...)
		cmd.Dir = desc.Dir
		cmd.Stderr = stderr

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, nil, fmt.Errorf("creating stdin pipe: %w", err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			stdin.Close()
			return nil, nil, fmt.Errorf("creating stdout pipe: %w", err)
		}
		if err := e.Start(cmd); err != nil {
			return nil, nil, fmt.Errorf("starting %s: %w", desc.Command, err)
		}
		return execProcess{cmd: cmd}, jsonrpcfx.StdioPipe{ReadCloser: stdout, WriteCloser: stdin}, nil
	}
}
