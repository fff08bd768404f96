package api

import (
	"context"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

// DistrictSafety returns server-computed safety scores per district.
func (c *Client) DistrictSafety(ctx context.Context) ([]domain.DistrictSafety, error) {
	var out []domain.DistrictSafety
	if err := c.get(ctx, "/map/district-safety", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics returns recorded platform metrics.
func (c *Client) Statistics(ctx context.Context) ([]domain.Statistic, error) {
	var out []domain.Statistic
	if err := c.get(ctx, "/statistics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
