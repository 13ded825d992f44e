package provider

import (
	"context"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// PushRequest is the JSON body posted to the push gateway. The device-side
// bridge turns it into a local notification on the named channel, applying
// the sound/vibration settings and attaching the tap payload.
type PushRequest struct {
	MemberID   string `json:"member_id"`
	ChannelID  string `json:"channel_id"`
	GroupID    string `json:"group_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Payload    string `json:"payload"`
	Importance string `json:"importance"`
	Sound      string `json:"sound,omitempty"`
	Vibrate    bool   `json:"vibrate"`
	Badge      *int   `json:"badge,omitempty"`
}

// PushResponse maps the gateway's 202 Accepted response body.
type PushResponse struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Provider abstracts delivery to the external push gateway.
// Mocking this interface in tests gives full control over gateway behaviour
// without making real HTTP calls.
type Provider interface {
	Send(ctx context.Context, r *domain.Reminder) (*PushResponse, error)
}
