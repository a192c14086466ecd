package errors

import (
	stderr "errors"
	"fmt"
)

// ServerNotFoundError is the single outcome of every failed server resolution.
type ServerNotFoundError struct {
	Binary string
	Cause  error
}

// Error is an implementation of the error interface.
func (n *ServerNotFoundError) Error() string {
	if n.Cause == nil {
		return fmt.Sprintf("couldn't find %s server binary", n.Binary)
	}
	return fmt.Sprintf("couldn't find %s server binary: %s", n.Binary, n.Cause)
}

// Unwrap returns the last failure that led to the server not being found.
func (n *ServerNotFoundError) Unwrap() error {
	return n.Cause
}

// IsServerNotFound reports whether ServerNotFoundError is part of the error chain.
func IsServerNotFound(e error) bool {
	var nf *ServerNotFoundError
	return stderr.As(e, &nf)
}

// UnsupportedPlatformError indicates that no server binary exists for the running operating system.
type UnsupportedPlatformError struct {
	Platform string
}

// Error is an implementation of the error interface.
func (n *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s", n.Platform)
}

// IsUnsupportedPlatform reports whether UnsupportedPlatformError is part of the error chain.
func IsUnsupportedPlatform(e error) bool {
	var up *UnsupportedPlatformError
	return stderr.As(e, &up)
}

// DownloadStage names the step of a managed download that failed.
type DownloadStage string

// Download stages.
const (
	DownloadStageRequest DownloadStage = "request"
	DownloadStageHeaders DownloadStage = "headers"
	DownloadStageWrite   DownloadStage = "write"
	DownloadStageRename  DownloadStage = "rename"
)

// DownloadError indicates that fetching the managed server binary failed.
type DownloadError struct {
	URL   string
	Stage DownloadStage
	Err   error
}

// Error is an implementation of the error interface.
func (n *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s (%s): %s", n.URL, n.Stage, n.Err)
}

// Unwrap returns the underlying failure.
func (n *DownloadError) Unwrap() error {
	return n.Err
}
