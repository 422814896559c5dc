package panel

import (
	"context"
	"net/http"
)

// CreateScene adds a scene and returns every scene name in backend order.
func (c *Client) CreateScene(ctx context.Context, name string) ([]string, error) {
	var resp SceneListResponse
	if err := c.do(ctx, "obs.scene", http.MethodPost, "/obs/scene/create", SceneCreateRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	if resp.Names == nil {
		return []string{}, nil
	}
	return resp.Names, nil
}

// SubmitTask updates the on-screen task text.
func (c *Client) SubmitTask(ctx context.Context, req TaskRequest) error {
	return c.do(ctx, "obs.task", http.MethodPost, "/obs/task", req, nil)
}

// SubmitOverlay updates the overlay text.
func (c *Client) SubmitOverlay(ctx context.Context, req OverlayRequest) error {
	return c.do(ctx, "obs.overlay", http.MethodPost, "/obs/overlay", req, nil)
}

// UpdateStream toggles streaming and recording. A nil error means the
// backend accepted the change with a 2xx status.
func (c *Client) UpdateStream(ctx context.Context, req StreamUpdateRequest) error {
	return c.do(ctx, "obs.stream", http.MethodPost, "/obs/stream", req, nil)
}
