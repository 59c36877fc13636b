package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "botforge"

// StartBlockSpan starts a span for a block operation on a chatbot.
func StartBlockSpan(ctx context.Context, op, chatbotID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, op,
		trace.WithAttributes(
			attribute.String("chatbot.id", chatbotID),
		),
	)
}

// StartChatbotSpan starts a span for a chatbot lifecycle operation.
func StartChatbotSpan(ctx context.Context, op, ownerID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, op,
		trace.WithAttributes(
			attribute.String("owner.id", ownerID),
		),
	)
}
