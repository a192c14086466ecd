package mapper

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uber/zeta-note-client/src/zn/entity"
)

// wireStatus covers every shape of the server status notification seen in the wild:
// {state, notes}, {state, count} and the older {ok, count}.
type wireStatus struct {
	State *entity.RunState `json:"state"`
	Notes *int             `json:"notes"`
	Count *int             `json:"count"`
	OK    *bool            `json:"ok"`
}

// StatusFromNotification decodes the params of a server status notification.
func StatusFromNotification(params json.RawMessage) (entity.Status, error) {
	if len(params) == 0 {
		return entity.Status{}, errors.New("empty status payload")
	}

	var w wireStatus
	if err := json.Unmarshal(params, &w); err != nil {
		return entity.Status{}, fmt.Errorf("decoding status payload: %w", err)
	}

	var s entity.Status
	switch {
	case w.State != nil:
		s.State = *w.State
	case w.OK != nil && *w.OK:
		s.State = entity.RunStateOK
	case w.OK != nil:
		s.State = entity.RunStateDead
	default:
		return entity.Status{}, errors.New("status payload carries neither state nor ok")
	}

	switch {
	case w.Notes != nil:
		s.Count = *w.Notes
	case w.Count != nil:
		s.Count = *w.Count
	}
	if s.Count < 0 {
		s.Count = 0
	}
	return s, nil
}

// StatusToStatusBar builds the host notification for a rendered status.
func StatusToStatusBar(s entity.Status, text string, visible bool) entity.StatusBarParams {
	return entity.StatusBarParams{
		Text:    text,
		Visible: visible,
		Command: entity.CommandShowOutputChannel,
		State:   s.State,
		Count:   s.Count,
	}
}
