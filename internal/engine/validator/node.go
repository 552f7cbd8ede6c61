package validator

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the validator Graft node.
const NodeID graft.ID = "engine.validator"

// Factory builds validators for a known-module set resolved at run time.
type Factory func(known []string) *Validator

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return New, nil
		},
	})
}
