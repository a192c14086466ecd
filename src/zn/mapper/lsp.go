package mapper

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// RequestToInitializeParams decodes a host's initialize request.
func RequestToInitializeParams(req jsonrpc2.Request) (*protocol.InitializeParams, error) {
	return decodeParams[protocol.InitializeParams](req)
}

// RequestToInitializedParams decodes a host's initialized notification.
func RequestToInitializedParams(req jsonrpc2.Request) (*protocol.InitializedParams, error) {
	return decodeParams[protocol.InitializedParams](req)
}

// RequestToExecuteCommandParams decodes a host's workspace/executeCommand request.
func RequestToExecuteCommandParams(req jsonrpc2.Request) (*protocol.ExecuteCommandParams, error) {
	return decodeParams[protocol.ExecuteCommandParams](req)
}

// RequestToLogMessageParams decodes a server's window/logMessage notification.
func RequestToLogMessageParams(req jsonrpc2.Request) (*protocol.LogMessageParams, error) {
	return decodeParams[protocol.LogMessageParams](req)
}

// RequestToShowMessageParams decodes a server's window/showMessage notification or request.
func RequestToShowMessageParams(req jsonrpc2.Request) (*protocol.ShowMessageParams, error) {
	return decodeParams[protocol.ShowMessageParams](req)
}

// RequestToConfigurationParams decodes a server's workspace/configuration request.
func RequestToConfigurationParams(req jsonrpc2.Request) (*protocol.ConfigurationParams, error) {
	return decodeParams[protocol.ConfigurationParams](req)
}

// decodeParams treats absent params as the zero value, which is what a host sends for
// parameterless notifications.
func decodeParams[T any](req jsonrpc2.Request) (*T, error) {
	var params T
	raw := req.Params()
	if len(raw) == 0 {
		return &params, nil
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err)
	}
	return &params, nil
}
