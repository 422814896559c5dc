package panel

import (
	"context"
	"net/http"
)

// UpdateTwitchMetadata edits the channel title, category, description and tags.
func (c *Client) UpdateTwitchMetadata(ctx context.Context, req TwitchUpdateRequest) error {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return c.do(ctx, "twitch.update", http.MethodPost, "/twitch/update", req, nil)
}

// SearchCategories looks up Twitch categories matching query.
func (c *Client) SearchCategories(ctx context.Context, query string) (CategoryResults, error) {
	results := CategoryResults{}
	if err := c.do(ctx, "twitch.search", http.MethodPost, "/twitch/search/categories", CategorySearchRequest{Query: query}, &results); err != nil {
		return nil, err
	}
	for key, entry := range results {
		entry.Name = key
		results[key] = entry
	}
	return results, nil
}
