package model

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestHost(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	h := Host{UUID: id, ClientName: "vscode"}
	assert.Equal(t, id, h.UUID)
	assert.Nil(t, h.Conn)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
