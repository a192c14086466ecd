package logfilewriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uber/zeta-note-client/src/zn/internal/fs"
	"github.com/uber/zeta-note-client/src/zn/internal/serverinfofile"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_fmtOutputKey = "output:%s"
	_logsDirName  = "zn-client"
)

// Params define the dependencies for SetupOutputWriter.
type Params struct {
	FS             fs.ZnFS
	ServerInfoFile serverinfofile.ServerInfoFile
}

// OutputWriter is a human readable log sink backed by a temporary file. The file path is
// published in the server info file so that a host can tail it.
type OutputWriter struct {
	logger   *zap.SugaredLogger
	file     *os.File
	key      string
	fs       fs.ZnFS
	infoFile serverinfofile.ServerInfoFile

	closeOnce sync.Once
	closeErr  error
}

// SetupOutputWriter creates a writer for a single Session sink such as the server output or
// the protocol trace. The caller owns the writer and must Close it when the Session ends.
func SetupOutputWriter(p Params, name string) (*OutputWriter, error) {
	logsDirPath := filepath.Join(os.TempDir(), _logsDirName, name)
	if err := p.FS.MkdirAll(logsDirPath); err != nil {
		return nil, fmt.Errorf("creating %s log directory: %w", name, err)
	}

	logFile, err := p.FS.TempFile(logsDirPath, "*.log")
	if err != nil {
		return nil, fmt.Errorf("creating %s log file: %w", name, err)
	}

	key := fmt.Sprintf(_fmtOutputKey, name)
	if err := p.ServerInfoFile.UpdateField(key, logFile.Name()); err != nil {
		// The sink still works without being discoverable.
		zap.S().Warnw("publishing output file", "name", name, zap.Error(err))
	}

	// Write via a logger for formatting, timestamp, and buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)

	return &OutputWriter{
		logger:   zap.New(core).Sugar(),
		file:     logFile,
		key:      key,
		fs:       p.FS,
		infoFile: p.ServerInfoFile,
	}, nil
}

// Path returns the location of the backing file.
func (o *OutputWriter) Path() string {
	return o.file.Name()
}

// Write implements the io.Writer interface by sending data to the given logger.
func (o *OutputWriter) Write(p []byte) (n int, err error) {
	// Incoming data may contain multiple lines, including blank ones.
	// Split and log each line individually.
	lines := strings.Split(string(p), "\n")
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}

	return len(p), nil
}

// Close flushes the sink, removes the backing file and unpublishes it. Repeated calls return
// the result of the first.
func (o *OutputWriter) Close() error {
	o.closeOnce.Do(func() {
		// Sync on a regular file can report EINVAL on some platforms; it is not a release failure.
		_ = o.logger.Sync()
		o.closeErr = multierr.Combine(
			o.file.Close(),
			o.fs.Remove(o.file.Name()),
			o.infoFile.DeleteField(o.key),
		)
	})
	return o.closeErr
}
