package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modscan/internal/adapters/catalog" //nolint:depguard // Wired in app layer
	"go.trai.ch/modscan/internal/adapters/codec"   //nolint:depguard // Wired in app layer
	"go.trai.ch/modscan/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modscan/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modscan/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/modscan/internal/engine/scanner"
	"go.trai.ch/modscan/internal/engine/validator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			codec.NodeID,
			scanner.NodeID,
			validator.NodeID,
			catalog.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	codecs, err := graft.Dep[ports.Codecs](ctx)
	if err != nil {
		return nil, err
	}

	scan, err := graft.Dep[*scanner.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	newValidator, err := graft.Dep[validator.Factory](ctx)
	if err != nil {
		return nil, err
	}

	catalogs, err := graft.Dep[ports.CatalogOpener](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, codecs, scan, newValidator, catalogs, watchers, log), nil
}
