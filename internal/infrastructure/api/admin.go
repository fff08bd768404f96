package api

import (
	"context"
	"strconv"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/pkg/validate"
)

// ListUsers returns every registered user. ADMIN only server-side; the
// backend answers 403 otherwise.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

// ListBans returns all active suspensions.
func (c *Client) ListBans(ctx context.Context) ([]domain.BanRecord, error) {
	var bans []domain.BanRecord
	if err := c.get(ctx, "/bans", nil, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}

// UserBans returns the active suspensions of one user.
func (c *Client) UserBans(ctx context.Context, userID int64) ([]domain.BanRecord, error) {
	var bans []domain.BanRecord
	if err := c.get(ctx, "/bans/users/"+strconv.FormatInt(userID, 10), nil, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}

// UserBanHistory returns all suspensions a user ever received.
func (c *Client) UserBanHistory(ctx context.Context, userID int64) ([]domain.BanRecord, error) {
	var bans []domain.BanRecord
	if err := c.get(ctx, "/bans/users/"+strconv.FormatInt(userID, 10)+"/history", nil, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}

// BanUser imposes a new suspension on a user.
func (c *Client) BanUser(ctx context.Context, userID int64, in domain.BanInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	return c.post(ctx, "/bans/users/"+strconv.FormatInt(userID, 10), nil, in, nil)
}

// LiftBan deactivates an existing suspension.
func (c *Client) LiftBan(ctx context.Context, banID int64) error {
	return c.patch(ctx, "/bans/"+strconv.FormatInt(banID, 10), map[string]bool{"active": false})
}
