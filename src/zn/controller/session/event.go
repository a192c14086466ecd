package session

import (
	"github.com/gofrs/uuid"
	"github.com/uber/zeta-note-client/src/zn/entity"
)

// Event is something a Session reports to its owner. The set is closed: ReadyEvent,
// StatusEvent and StoppedEvent.
type Event interface {
	// SessionID identifies the Session that produced the event.
	SessionID() uuid.UUID
	event()
}

// ReadyEvent reports a completed handshake.
type ReadyEvent struct {
	ID uuid.UUID
}

// StatusEvent carries a status notification received from the server.
type StatusEvent struct {
	ID     uuid.UUID
	Status entity.Status
}

// StoppedEvent reports that the process exited or its connection closed. It is emitted exactly
// once per started Session.
type StoppedEvent struct {
	ID  uuid.UUID
	Err error
}

// SessionID implements Event.
func (e ReadyEvent) SessionID() uuid.UUID { return e.ID }

// SessionID implements Event.
func (e StatusEvent) SessionID() uuid.UUID { return e.ID }

// SessionID implements Event.
func (e StoppedEvent) SessionID() uuid.UUID { return e.ID }

func (ReadyEvent) event()   {}
func (StatusEvent) event()  {}
func (StoppedEvent) event() {}

// EmitFunc delivers an Event to the Session owner.
type EmitFunc func(Event)
