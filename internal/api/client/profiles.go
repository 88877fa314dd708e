package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/dealsense/internal/engine"
)

// ListProfiles returns every profile, or only id when it is set.
func (c *Client) ListProfiles(ctx context.Context, id string) ([]engine.ProfileView, error) {
	path := "/api/v1/profiles"
	if id != "" {
		path += "?" + url.Values{"profile_id": {id}}.Encode()
	}

	var resp struct {
		Profiles []engine.ProfileView `json:"profiles"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}

// UpsertProfile creates or replaces a profile.
func (c *Client) UpsertProfile(ctx context.Context, in *engine.ProfileInput) (*engine.ProfileView, error) {
	var v engine.ProfileView
	if err := c.post(ctx, "/api/v1/profiles", in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteProfile removes a profile.
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/profiles/"+url.PathEscape(id))
}
