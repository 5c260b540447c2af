// Package inventoryhttp talks to the pharmacy inventory service over its
// JSON API. Reservations are all-or-nothing on the inventory side; this
// adapter only translates the wire protocol.
package inventoryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"
)

const defaultRequestTimeout = 10 * time.Second

type reservationLine struct {
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        int    `json:"quantity"`
}

type reservationRequest struct {
	Items []reservationLine `json:"items"`
}

// HTTPInventoryGateway implements InventoryGateway against the inventory
// service's REST endpoints.
type HTTPInventoryGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPInventoryGateway creates a gateway for the inventory service at
// baseURL, e.g. "http://inventory:8080".
func NewHTTPInventoryGateway(baseURL string) (*HTTPInventoryGateway, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &HTTPInventoryGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// Reserve asks the inventory service to hold stock for every line. A 409
// from the service means at least one line cannot be covered.
func (g *HTTPInventoryGateway) Reserve(ctx context.Context, reservations []ports.StockReservation) error {
	return g.post(ctx, "/api/v1/reservations", reservations)
}

// Release returns previously held stock.
func (g *HTTPInventoryGateway) Release(ctx context.Context, reservations []ports.StockReservation) error {
	return g.post(ctx, "/api/v1/reservations/release", reservations)
}

func (g *HTTPInventoryGateway) post(ctx context.Context, path string, reservations []ports.StockReservation) error {
	if len(reservations) == 0 {
		return errs.NewValueIsRequiredError("reservations")
	}

	body := reservationRequest{Items: make([]reservationLine, 0, len(reservations))}
	for _, r := range reservations {
		if err := r.InventoryItemID.Validate(); err != nil {
			return err
		}
		body.Items = append(body.Items, reservationLine{
			InventoryItemID: r.InventoryItemID.String(),
			Quantity:        r.Quantity,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return ports.ErrInsufficientStock
	case resp.StatusCode >= 400:
		return fmt.Errorf("inventory service returned %d for %s", resp.StatusCode, path)
	}
	return nil
}
