package response

import (
	"time"

	"nest/internal/domain/delivery"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// DeliveryResponse carries the raw payload as text; unrecognized payloads are
// not guaranteed to be valid JSON.
type DeliveryResponse struct {
	ID          uuid.UUID  `json:"id"`
	EventID     string     `json:"event_id"`
	EventType   string     `json:"event_type"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	Attempts    int        `json:"attempts"`
	Payload     string     `json:"payload"`
	ReceivedAt  time.Time  `json:"received_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

type DeliveryListResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

func FromDelivery(d *delivery.Delivery) (*DeliveryResponse, error) {
	var resp DeliveryResponse
	if err := copier.Copy(&resp, d); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromDeliveries(items []*delivery.Delivery, next string) (*DeliveryListResponse, error) {
	resp := &DeliveryListResponse{Deliveries: make([]DeliveryResponse, len(items)), NextCursor: next}
	for i, d := range items {
		if err := copier.Copy(&resp.Deliveries[i], d); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
