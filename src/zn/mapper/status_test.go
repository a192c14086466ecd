package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/zeta-note-client/src/zn/entity"
)

func TestStatusFromNotification(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    entity.Status
		wantErr bool
	}{
		{
			name:    "state with notes",
			payload: `{"state":"ok","notes":42}`,
			want:    entity.Status{State: entity.RunStateOK, Count: 42},
		},
		{
			name:    "state with count",
			payload: `{"state":"ok","count":7}`,
			want:    entity.Status{State: entity.RunStateOK, Count: 7},
		},
		{
			name:    "init without count",
			payload: `{"state":"init"}`,
			want:    entity.Status{State: entity.RunStateInit},
		},
		{
			name:    "dead",
			payload: `{"state":"dead","notes":3}`,
			want:    entity.Status{State: entity.RunStateDead, Count: 3},
		},
		{
			name:    "legacy ok",
			payload: `{"ok":true,"count":5}`,
			want:    entity.Status{State: entity.RunStateOK, Count: 5},
		},
		{
			name:    "legacy not ok",
			payload: `{"ok":false,"count":5}`,
			want:    entity.Status{State: entity.RunStateDead, Count: 5},
		},
		{
			name:    "negative count clamps",
			payload: `{"state":"ok","notes":-4}`,
			want:    entity.Status{State: entity.RunStateOK, Count: 0},
		},
		{
			name:    "unknown state",
			payload: `{"state":"zombie","notes":1}`,
			wantErr: true,
		},
		{
			name:    "neither state nor ok",
			payload: `{"notes":1}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			payload: `[1,2]`,
			wantErr: true,
		},
		{
			name:    "empty",
			payload: ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StatusFromNotification(json.RawMessage(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusToStatusBar(t *testing.T) {
	got := StatusToStatusBar(entity.Status{State: entity.RunStateOK, Count: 9}, "✓ ZN (9)", true)
	assert.Equal(t, entity.StatusBarParams{
		Text:    "✓ ZN (9)",
		Visible: true,
		Command: entity.CommandShowOutputChannel,
		State:   entity.RunStateOK,
		Count:   9,
	}, got)
}
