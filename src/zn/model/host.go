package model

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Host is the repository layer model for a connected editor host.
type Host struct {
	UUID             uuid.UUID
	Conn             jsonrpc2.Conn
	InitializeParams *protocol.InitializeParams
	ClientName       string
}
