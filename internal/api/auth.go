package api

import (
	"context"

	"github.com/shophub/shopctl/internal/models"
)

type userResponse struct {
	envelope
	User models.Profile `json:"user"`
}

// RegisterProfile upserts the user profile after an auth-provider sign-in.
func (c *Client) RegisterProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var resp userResponse
	if err := c.post(ctx, "/auth/register", profile, &resp); err != nil {
		return models.Profile{}, err
	}
	return resp.User, nil
}

func (c *Client) ProfileByUID(ctx context.Context, uid string) (models.Profile, error) {
	var resp userResponse
	if err := c.get(ctx, "/auth/user/"+uid, &resp); err != nil {
		return models.Profile{}, err
	}
	return resp.User, nil
}
