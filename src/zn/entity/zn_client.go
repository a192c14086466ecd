// Package entity contains the domain types for the zn-client daemon.
package entity

import (
	"encoding/json"
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type keyType string

// HostContextKey indicates the key to be used to identify the editor host UUID in the context.
const HostContextKey keyType = "HostUUID"

// RunState is the health of the current Session as shown to the user.
type RunState string

const (
	// RunStateInit means no connection attempt has completed yet.
	RunStateInit RunState = "init"
	// RunStateOK means the server is connected and reporting health.
	RunStateOK RunState = "ok"
	// RunStateDead means resolution failed or the connection terminated.
	RunStateDead RunState = "dead"
)

// String implements fmt.Stringer.
func (s RunState) String() string {
	return string(s)
}

// Valid reports whether s is one of the known run states.
func (s RunState) Valid() bool {
	switch s {
	case RunStateInit, RunStateOK, RunStateDead:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unknown run states so that a malformed status payload is never applied.
func (s *RunState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	state := RunState(raw)
	if !state.Valid() {
		return fmt.Errorf("unknown run state %q", raw)
	}
	*s = state
	return nil
}

// Status is the last reported health of the server and its indexed note count.
type Status struct {
	State RunState `json:"state" zap:"state"`
	Count int      `json:"count" zap:"count"`
}

var (
	// DefaultStatus is shown before the first status notification of a Session.
	DefaultStatus = Status{State: RunStateInit}
	// DeadStatus is shown when no server is running.
	DeadStatus = Status{State: RunStateDead}
)

// InvocationDescriptor is everything needed to spawn the server process.
type InvocationDescriptor struct {
	Command string   `json:"command" zap:"command"`
	Args    []string `json:"args" zap:"args"`
	Dir     string   `json:"dir,omitempty" zap:"dir"`
}

// ExperimentalCapabilities are the custom features advertised to the server during initialize.
type ExperimentalCapabilities struct {
	CodeLensShowReferences bool `json:"codeLensShowReferences"`
	FollowLinks            bool `json:"followLinks"`
	StatusNotification     bool `json:"statusNotification"`
}

// ShowReferencesRequest is the payload of the show-references command produced by server code lenses.
type ShowReferencesRequest struct {
	URI       string              `json:"uri"`
	Position  protocol.Position   `json:"position"`
	Locations []protocol.Location `json:"locations"`
}

// FollowLinkRequest is the payload of the follow-link command.
type FollowLinkRequest struct {
	From protocol.Location `json:"from"`
	To   protocol.Location `json:"to"`
}

// Host is a single connected editor host.
type Host struct {
	UUID             uuid.UUID                  `json:"uuid" zap:"uuid"`
	Conn             jsonrpc2.Conn              `json:"-" zap:"-"`
	InitializeParams *protocol.InitializeParams `json:"-" zap:"-"`
	ClientName       string                     `json:"clientName" zap:"clientName"`
}

// Settings are the user-controlled inputs to server resolution.
type Settings struct {
	CustomCommand    string `yaml:"customCommand" json:"customCommand" zap:"customCommand"`
	CustomCommandDir string `yaml:"customCommandDir" json:"customCommandDir" zap:"customCommandDir"`
}

// StatusBarParams is the payload of the status indicator notification sent to hosts.
type StatusBarParams struct {
	Text    string   `json:"text"`
	Visible bool     `json:"visible"`
	Command string   `json:"command"`
	State   RunState `json:"state"`
	Count   int      `json:"count"`
}
