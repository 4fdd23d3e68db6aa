package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps the posthog client so callers can treat an
// unconfigured client as a no-op instead of nil-checking everywhere.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient creates the product analytics client. An empty API
// key yields a disabled wrapper whose methods do nothing.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	w := &PosthogClientWrapper{logger: logger}
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, product analytics disabled")
		return w
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return w
	}
	w.client = client
	return w
}

// IsInitialized reports whether events will actually be delivered.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue captures an event for the given user. Delivery is asynchronous
// and failures are logged, never surfaced to the caller.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		w.logger.Warn("Failed to enqueue PostHog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes any buffered events and shuts the client down.
func (w *PosthogClientWrapper) Close() {
	if w.client == nil {
		return
	}
	if err := w.client.Close(); err != nil {
		w.logger.Warn("Failed to close PostHog client", slog.String("error", err.Error()))
	}
}
