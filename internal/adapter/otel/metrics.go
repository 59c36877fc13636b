package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "botforge"

// Metrics holds all BotForge metric instruments.
type Metrics struct {
	ChatbotsCreated  metric.Int64Counter
	ChatbotsDeleted  metric.Int64Counter
	BlocksWritten    metric.Int64Counter
	OwnershipDenied  metric.Int64Counter
	ContactConflicts metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ChatbotsCreated, err = meter.Int64Counter("botforge.chatbots.created",
		metric.WithDescription("Number of chatbots created"))
	if err != nil {
		return nil, err
	}

	m.ChatbotsDeleted, err = meter.Int64Counter("botforge.chatbots.deleted",
		metric.WithDescription("Number of chatbots deleted"))
	if err != nil {
		return nil, err
	}

	m.BlocksWritten, err = meter.Int64Counter("botforge.blocks.written",
		metric.WithDescription("Number of block create, update and delete operations"))
	if err != nil {
		return nil, err
	}

	m.OwnershipDenied, err = meter.Int64Counter("botforge.ownership.denied",
		metric.WithDescription("Number of requests rejected by the ownership gate"))
	if err != nil {
		return nil, err
	}

	m.ContactConflicts, err = meter.Int64Counter("botforge.contact.conflicts",
		metric.WithDescription("Number of rejected duplicate contact block creations"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
