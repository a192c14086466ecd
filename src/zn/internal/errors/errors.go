package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoCommandOnWireError reports that an executeCommand request is missing its command name.
	NoCommandOnWireError = New("command is required")
	// NoPayloadOnWireError reports that a navigation command is missing its payload argument.
	NoPayloadOnWireError = New("command payload is required")
	// UnknownCommandError reports an executeCommand request for a command zn-client does not provide.
	UnknownCommandError = New("unknown command")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, NoCommandOnWireError) ||
		stderr.Is(e, NoPayloadOnWireError) ||
		stderr.Is(e, UnknownCommandError)
}
