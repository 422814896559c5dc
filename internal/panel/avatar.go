package panel

import (
	"context"
	"net/http"
)

const avatarStatusPath = "/avatar_status"

// SetAvatarStatus makes the avatar speak text.
func (c *Client) SetAvatarStatus(ctx context.Context, text string) error {
	return c.do(ctx, "avatar.say", http.MethodPost, avatarStatusPath, AvatarStatusRequest{Text: text}, nil)
}

// AvatarTalking reports whether the avatar is currently speaking. The
// backend answers 200 while talking and 404 when idle.
func (c *Client) AvatarTalking(ctx context.Context) (bool, error) {
	resp, err := c.send(ctx, "avatar.status", http.MethodGet, avatarStatusPath, nil)
	if err != nil {
		return false, err
	}
	switch {
	case resp.status == http.StatusNotFound:
		return false, nil
	case resp.status >= 200 && resp.status < 300:
		return true, nil
	default:
		return false, &StatusError{Endpoint: avatarStatusPath, StatusCode: resp.status, Body: string(resp.body)}
	}
}
