package server

import (
	"fmt"

	"github.com/google/uuid"
	"go.jetify.com/typeid/v2"
)

// PrefixRender is the typeid prefix of render job IDs
const PrefixRender = "render"

// newRenderID returns a sortable, prefixed render job ID such as
// render_01h455vb4pex5vsknk084sn02q
func newRenderID() string {
	return typeid.MustGenerate(PrefixRender).String()
}

// validateRenderID checks that id is a render typeid
func validateRenderID(id string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != PrefixRender {
		return fmt.Errorf("expected prefix %q but got %q in id %q", PrefixRender, parsed.Prefix(), id)
	}
	return nil
}

// newConnectionID identifies a websocket connection in the logs
func newConnectionID() string {
	return uuid.New().String()
}
