package request

import (
	"encoding/json"
	"strings"

	"nest/internal/domain/delivery"
	"nest/internal/usecase/queries"
)

// WebhookBatchRequest is the provider's delivery envelope. Events stay raw so
// a payload the classifier cannot read is still recorded.
type WebhookBatchRequest struct {
	Events []json.RawMessage `json:"events" binding:"required,min=1"`
}

type GreenlightRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type EntitlementQuery struct {
	Family   string `form:"family" binding:"omitempty,max=64"`
	Products string `form:"products" binding:"omitempty,max=1024"`
}

func (q EntitlementQuery) ToQuery(email string) queries.EntitlementRequest {
	req := queries.EntitlementRequest{Email: email, Family: strings.TrimSpace(q.Family)}
	for _, alias := range strings.Split(q.Products, ",") {
		if alias = strings.TrimSpace(alias); alias != "" {
			req.Products = append(req.Products, alias)
		}
	}
	return req
}

type DeliveryListQuery struct {
	Status string `form:"status"`
	After  string `form:"after"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// ToQuery defaults to the triage view of unrecognized deliveries.
func (q DeliveryListQuery) ToQuery() (delivery.Status, *queries.Cursor, int, error) {
	status := delivery.StatusUnrecognized
	if q.Status != "" {
		var err error
		if status, err = delivery.ParseStatus(q.Status); err != nil {
			return "", nil, 0, err
		}
	}
	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	return status, cursor, queries.ValidateLimit(q.Limit), nil
}
