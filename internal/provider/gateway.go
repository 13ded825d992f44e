package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/category"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// GatewayProvider delivers reminders by POSTing to the push gateway that
// bridges to the phones' notification plugin. The base URL is injected from
// config so tests can point to a local mock.
type GatewayProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewGatewayProvider(baseURL string, timeout time.Duration) *GatewayProvider {
	return &GatewayProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts the reminder to the configured gateway URL and expects a
// 202 Accepted response with a JSON body containing messageId.
// The channel definition for the reminder's category supplies the channel id
// and delivery knobs the device applies.
func (p *GatewayProvider) Send(ctx context.Context, r *domain.Reminder) (*PushResponse, error) {
	def, ok := category.Lookup(r.Category)
	if !ok {
		return nil, fmt.Errorf("no channel definition for category %q", r.Category)
	}

	body, err := json.Marshal(PushRequest{
		MemberID:   r.MemberID,
		ChannelID:  def.ChannelID,
		GroupID:    def.GroupID,
		Title:      r.Title,
		Body:       r.Body,
		Payload:    r.Payload,
		Importance: string(r.Importance),
		Sound:      def.Sound,
		Vibrate:    def.Vibrate,
		Badge:      r.Badge,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}

	var pushResp PushResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &pushResp, nil
}

// compile-time check that GatewayProvider implements Provider
var _ Provider = (*GatewayProvider)(nil)
