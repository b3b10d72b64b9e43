package remote

import (
	"context"
	"net/http"
)

// ViewData loads the content of a view from the server's API.
type ViewData struct {
	client *Client
}

// NewViewData binds the view API to client.
func NewViewData(client *Client) *ViewData {
	return &ViewData{client: client}
}

// Fetch returns the JSON document for the named view.
func (v *ViewData) Fetch(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	err := v.client.Do(ctx, Request{Method: http.MethodGet, Path: "/api/views/" + name}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
