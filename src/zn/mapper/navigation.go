package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/uber/zeta-note-client/src/zn/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// CommandArgument decodes the single argument of an executeCommand request into dst.
func CommandArgument(params *protocol.ExecuteCommandParams, dst interface{}) error {
	if len(params.Arguments) != 1 {
		return fmt.Errorf("command %q expects exactly one argument, got %d", params.Command, len(params.Arguments))
	}

	// Arguments arrive as generic JSON values.
	raw, err := json.Marshal(params.Arguments[0])
	if err != nil {
		return fmt.Errorf("encoding argument of %q: %w", params.Command, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding argument of %q: %w", params.Command, err)
	}
	return nil
}

// ShowReferencesToEditorCommand translates a show-references request into the host's
// "show all references" navigation.
func ShowReferencesToEditorCommand(req *entity.ShowReferencesRequest) (*protocol.ExecuteCommandParams, error) {
	docURI, err := parseDocumentURI(req.URI)
	if err != nil {
		return nil, err
	}

	locations := req.Locations
	if locations == nil {
		locations = []protocol.Location{}
	}

	return &protocol.ExecuteCommandParams{
		Command:   entity.EditorCommandShowReferences,
		Arguments: []interface{}{docURI, req.Position, locations},
	}, nil
}

// FollowLinkToEditorCommand translates a follow-link request into the host's "go to
// locations" navigation, carrying the message shown when the target is missing.
func FollowLinkToEditorCommand(req *entity.FollowLinkRequest) (*protocol.ExecuteCommandParams, error) {
	fromURI, err := parseDocumentURI(string(req.From.URI))
	if err != nil {
		return nil, err
	}

	return &protocol.ExecuteCommandParams{
		Command: entity.EditorCommandGoToLocations,
		Arguments: []interface{}{
			fromURI,
			req.From.Range.Start,
			[]protocol.Location{req.To},
			"goto",
			entity.FollowLinkNotFoundMessage,
		},
	}, nil
}

func parseDocumentURI(s string) (uri.URI, error) {
	if s == "" {
		return "", fmt.Errorf("missing document uri")
	}
	u, err := uri.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing document uri %q: %w", s, err)
	}
	return u, nil
}
