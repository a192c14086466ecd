package gateway

import (
	"github.com/uber/zeta-note-client/src/zn/gateway/editor"
	"go.uber.org/fx"
)

// Module provides the outbound gateways.
var Module = fx.Provide(editor.New)
