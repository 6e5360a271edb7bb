package api

import (
	"context"

	"github.com/shophub/shopctl/internal/models"
)

type notificationsResponse struct {
	envelope
	Notifications []models.Notification `json:"notifications"`
}

type markReadResponse struct {
	envelope
}

func (c *Client) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var resp notificationsResponse
	if err := c.get(ctx, "/notifications/user/"+userID, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead flips the read flag; the only notification state the
// client is allowed to mutate.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	var resp markReadResponse
	return c.patch(ctx, "/notifications/"+id+"/read", nil, &resp)
}
