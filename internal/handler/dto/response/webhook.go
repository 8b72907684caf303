package response

import (
	"nest/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AcceptedDelivery struct {
	DeliveryID uuid.UUID `json:"id"`
	EventID    string    `json:"event_id"`
	Status     string    `json:"status"`
}

// WebhookAcceptedResponse lists event ids the provider can mark as delivered.
type WebhookAcceptedResponse struct {
	Accepted   []string           `json:"accepted"`
	Deliveries []AcceptedDelivery `json:"deliveries"`
}

func FromAcceptResults(results []*commands.AcceptResult) (*WebhookAcceptedResponse, error) {
	resp := &WebhookAcceptedResponse{
		Accepted:   make([]string, 0, len(results)),
		Deliveries: make([]AcceptedDelivery, len(results)),
	}
	for i, r := range results {
		if err := copier.Copy(&resp.Deliveries[i], r); err != nil {
			return nil, err
		}
		if r.EventID != "" {
			resp.Accepted = append(resp.Accepted, r.EventID)
		}
	}
	return resp, nil
}

// GreenlightResponse reports the switch. Enforced is false when the gate is
// disabled in configuration and every delivery is let through.
type GreenlightResponse struct {
	Open     bool `json:"open"`
	Enforced bool `json:"enforced"`
}
