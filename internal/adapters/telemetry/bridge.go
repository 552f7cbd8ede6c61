package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/modscan/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// LogBridge implements sdktrace.SpanProcessor by reporting ended spans through a Logger.
// It stays silent until enabled.
type LogBridge struct {
	logger  ports.Logger
	enabled atomic.Bool
}

// NewLogBridge returns a disabled LogBridge writing to logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// SetEnabled turns span reporting on or off.
func (b *LogBridge) SetEnabled(enable bool) {
	b.enabled.Store(enable)
}

// OnStart does nothing. Spans are reported once their duration is known.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its attributes and its duration. Failed spans are
// logged as warnings carrying the status description.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !b.enabled.Load() || !s.SpanContext().IsValid() {
		return
	}

	var msg strings.Builder
	msg.WriteString(s.Name())
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&msg, " %s=%s", kv.Key, kv.Value.Emit())
	}
	fmt.Fprintf(&msg, " (%s)", s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		b.logger.Warn(msg.String() + ": " + desc)
		return
	}
	b.logger.Info(msg.String())
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}
