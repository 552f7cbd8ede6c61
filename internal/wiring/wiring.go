// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modscan/internal/adapters/catalog"
	_ "go.trai.ch/modscan/internal/adapters/codec"
	_ "go.trai.ch/modscan/internal/adapters/config"
	_ "go.trai.ch/modscan/internal/adapters/fs"
	_ "go.trai.ch/modscan/internal/adapters/logger"
	_ "go.trai.ch/modscan/internal/adapters/telemetry"
	_ "go.trai.ch/modscan/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/modscan/internal/app"
	_ "go.trai.ch/modscan/internal/engine/scanner"
	_ "go.trai.ch/modscan/internal/engine/validator"
)
