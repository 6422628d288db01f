// pkg/engine/metrics.go
package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-flightsim/pkg/event"
)

const instrumentationName = "github.com/opd-ai/go-flightsim/pkg/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// sessionMetrics counts ticks and emitted events. The global meter is a
// no-op unless an SDK provider is installed.
type sessionMetrics struct {
	ticks  metric.Int64Counter
	events metric.Int64Counter
	bodies metric.Int64UpDownCounter
}

func newSessionMetrics() (*sessionMetrics, error) {
	m := meter()
	sm := &sessionMetrics{}

	var err error
	sm.ticks, err = m.Int64Counter(
		"flightsim.session.ticks",
		metric.WithDescription("Total simulation ticks run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	sm.events, err = m.Int64Counter(
		"flightsim.session.events",
		metric.WithDescription("Total events emitted by the simulation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating event counter: %w", err)
	}

	sm.bodies, err = m.Int64UpDownCounter(
		"flightsim.session.bodies",
		metric.WithDescription("Bodies currently registered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating body counter: %w", err)
	}

	return sm, nil
}

func (sm *sessionMetrics) recordTick(ctx context.Context, events []event.Event) {
	sm.ticks.Add(ctx, 1)
	for _, e := range events {
		sm.events.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(e.GetType()))))
	}
}

func (sm *sessionMetrics) recordBodies(ctx context.Context, delta int64) {
	sm.bodies.Add(ctx, delta)
}
