package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/donaldgifford/dealsense/internal/engine"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// InterestsParams tunes a profile deal listing. Zero values use the server
// defaults.
type InterestsParams struct {
	ProfileID string
	Limit     int
	NoDedupe  bool
}

// HotDeals returns trending deals for window ordered by sort.
func (c *Client) HotDeals(ctx context.Context, window, sort string) (*engine.HotDealsResult, error) {
	q := url.Values{}
	if window != "" {
		q.Set("window", window)
	}
	if sort != "" {
		q.Set("sort", sort)
	}

	path := "/api/v1/deals/hot"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res engine.HotDealsResult
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DealsByInterests returns deals ranked for a profile.
func (c *Client) DealsByInterests(ctx context.Context, p *InterestsParams) (*engine.InterestsResult, error) {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.NoDedupe {
		q.Set("dedupe", "false")
	}

	path := "/api/v1/profiles/" + url.PathEscape(p.ProfileID) + "/deals"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res engine.InterestsResult
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetDeal returns a single deal with its sidecar expanded.
func (c *Client) GetDeal(ctx context.Context, id string) (*domain.DealDetail, error) {
	var d domain.DealDetail
	if err := c.get(ctx, "/api/v1/deals/"+url.PathEscape(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// VerifyDeal asks the server to assess a stored deal or a title and URL.
func (c *Client) VerifyDeal(ctx context.Context, req engine.VerifyRequest) (*domain.Verification, error) {
	body := map[string]string{}
	for k, v := range map[string]string{"deal_id": req.DealID, "url": req.URL, "title": req.Title} {
		if v != "" {
			body[k] = v
		}
	}

	var v domain.Verification
	if err := c.post(ctx, "/api/v1/deals/verify", body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
