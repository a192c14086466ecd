package factory

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/jsonrpc2"
)

func TestUUID(t *testing.T) {
	assert.NotEqual(t, uuid.Nil, UUID())
	assert.NotEqual(t, UUID(), UUID())
}

func TestJSONRPCRequest(t *testing.T) {
	req := JSONRPCRequest("initialize", map[string]int{"processId": 1})
	_, isCall := req.(*jsonrpc2.Call)
	assert.True(t, isCall)
	assert.Equal(t, "initialize", req.Method())
	assert.JSONEq(t, `{"processId":1}`, string(req.Params()))
}

func TestJSONRPCNotification(t *testing.T) {
	n := JSONRPCNotification("zeta-note/status", map[string]interface{}{"state": "ok"})
	_, isNotification := n.(*jsonrpc2.Notification)
	assert.True(t, isNotification)
	assert.Equal(t, "zeta-note/status", n.Method())
}

func TestLocation(t *testing.T) {
	loc := Location("/notes/a.md", 3)
	assert.Equal(t, "file:///notes/a.md", string(loc.URI))
	assert.Equal(t, uint32(3), loc.Range.Start.Line)
}
