package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/tourfront/internal/model"
)

// ListTours fetches every tour from the tours API.
func (c *Client) ListTours(ctx context.Context) ([]model.Tour, error) {
	var out []model.Tour
	if err := c.do(ctx, "list tours", http.MethodGet, c.toursBaseURL+"/api/tours", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Tour{}
	}
	return out, nil
}
