package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	nb := New("not bad request")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "no command on wire",
			err:  NoCommandOnWireError,
			want: true,
		},
		{
			name: "wrapped missing payload",
			err:  fmt.Errorf("decoding: %w", NoPayloadOnWireError),
			want: true,
		},
		{
			name: "unknown command",
			err:  fmt.Errorf("%w: %q", UnknownCommandError, "zetaNote.unknown"),
			want: true,
		},
		{
			name: "not bad request",
			err:  nb,
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}
