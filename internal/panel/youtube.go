package panel

import (
	"context"
	"net/http"
)

// UploadToYoutube uploads a stored recording, optionally into a playlist.
// Backend failures are returned as *StatusError with the server text.
func (c *Client) UploadToYoutube(ctx context.Context, req YoutubeUploadRequest) error {
	return c.do(ctx, "youtube.upload", http.MethodPost, "/youtube_upload", req, nil)
}

// SetYoutubeCategory correlates a Twitch category with a YouTube category.
func (c *Client) SetYoutubeCategory(ctx context.Context, req YoutubeCategoryRequest) error {
	return c.do(ctx, "youtube.category", http.MethodPost, "/youtube_category", req, nil)
}
