package scanner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modscan/internal/adapters/codec"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modscan/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modscan/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/modscan/internal/core/ports"
)

// NodeID is the unique identifier for the scanner Graft node.
const NodeID graft.ID = "engine.scanner"

func init() {
	graft.Register(graft.Node[*Scanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WalkerNodeID,
			fs.HasherNodeID,
			codec.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Scanner, error) {
			walker, err := graft.Dep[ports.Walker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			codecs, err := graft.Dep[ports.Codecs](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(walker, codecs, hasher, tracer), nil
		},
	})
}
