package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestModule(t *testing.T) {
	var g editor.Gateway
	app := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&g),
	)
	app.RequireStart().RequireStop()
	assert.NotNil(t, g)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
