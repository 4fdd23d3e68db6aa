// Package push delivers mobile push notifications through OneSignal's
// REST API.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const oneSignalEndpoint = "https://onesignal.com/api/v1/notifications"

// Sender delivers a push notification to a set of device tokens.
type Sender interface {
	SendToTokens(ctx context.Context, tokens []string, title, message string) error
}

// OneSignalClient is a thin REST client for OneSignal. A client with an
// empty app id is valid and drops every send, mirroring how analytics
// degrade when unconfigured.
type OneSignalClient struct {
	appID      string
	restAPIKey string
	httpClient *http.Client
}

// NewOneSignalClient creates a OneSignal REST client.
func NewOneSignalClient(appID, restAPIKey string) *OneSignalClient {
	return &OneSignalClient{
		appID:      appID,
		restAPIKey: restAPIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Ensure OneSignalClient implements Sender
var _ Sender = (*OneSignalClient)(nil)

// IsConfigured reports whether the client has credentials to send with.
func (c *OneSignalClient) IsConfigured() bool {
	return c.appID != "" && c.restAPIKey != ""
}

type notificationPayload struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
}

// SendToTokens delivers one notification to the given device tokens.
func (c *OneSignalClient) SendToTokens(ctx context.Context, tokens []string, title, message string) error {
	if !c.IsConfigured() || len(tokens) == 0 {
		return nil
	}

	payload := notificationPayload{
		AppID:            c.appID,
		IncludePlayerIDs: tokens,
		Headings:         map[string]string{"en": title},
		Contents:         map[string]string{"en": message},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode onesignal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oneSignalEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build onesignal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.restAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("onesignal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("onesignal returned %s: %s", resp.Status, string(respBody))
	}
	return nil
}
