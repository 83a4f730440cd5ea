package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iliyamo/tourfront/internal/model"
)

// ListInquiries fetches the full inquiry collection.
func (c *Client) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	var out []model.Inquiry
	if err := c.do(ctx, "list inquiries", http.MethodGet, c.baseURL+"/api/contact/inquiries", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Inquiry{}
	}
	return out, nil
}

// DeleteInquiry removes one inquiry.  The response body is ignored.
func (c *Client) DeleteInquiry(ctx context.Context, id string) error {
	return c.do(ctx, "delete inquiry", http.MethodDelete, c.baseURL+"/api/contact/inquiries/"+url.PathEscape(id), nil, nil)
}

// SendReply posts a staff reply for an inquiry.
func (c *Client) SendReply(ctx context.Context, req model.ReplyRequest) error {
	return c.do(ctx, "send reply", http.MethodPost, c.baseURL+"/api/contact/reply", req, nil)
}
