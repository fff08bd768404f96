package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/pkg/validate"
)

// ListRooms returns every published listing.
func (c *Client) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	var rooms []roomResponse
	if err := c.get(ctx, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return c.mapRooms(rooms), nil
}

// SearchRooms returns listings matching the given filters.
func (c *Client) SearchRooms(ctx context.Context, q domain.RoomSearchQuery) ([]domain.RoomSummary, error) {
	query := url.Values{}
	if q.Keyword != "" {
		query.Set("keyword", q.Keyword)
	}
	if q.Type != "" {
		query.Set("type", q.Type)
	}
	if q.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatInt(q.MinPrice, 10))
	}
	if q.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatInt(q.MaxPrice, 10))
	}

	var rooms []roomResponse
	if err := c.get(ctx, "/rooms/search", query, &rooms); err != nil {
		return nil, err
	}
	return c.mapRooms(rooms), nil
}

// RoomDetail returns one listing with its full detail fields.
func (c *Client) RoomDetail(ctx context.Context, roomID int64) (*domain.RoomSummary, error) {
	var room roomResponse
	if err := c.get(ctx, "/rooms/"+strconv.FormatInt(roomID, 10), nil, &room); err != nil {
		return nil, err
	}
	mapped := c.mapRoom(room)
	return &mapped, nil
}

// RoomsNear returns listings around a map coordinate.
func (c *Client) RoomsNear(ctx context.Context, q domain.NearQuery) ([]domain.RoomSummary, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	if q.RadiusKm > 0 {
		query.Set("radius", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
	}

	var rooms []roomResponse
	if err := c.get(ctx, "/map/rooms/near", query, &rooms); err != nil {
		return nil, err
	}
	return c.mapRooms(rooms), nil
}

// CreateRoom publishes a new listing for a host.
func (c *Client) CreateRoom(ctx context.Context, in domain.RoomRequest) (*domain.RoomSummary, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	var room roomResponse
	if err := c.post(ctx, "/rooms", nil, in, &room); err != nil {
		return nil, err
	}
	mapped := c.mapRoom(room)
	return &mapped, nil
}

// UpdateRoom replaces an existing listing.
func (c *Client) UpdateRoom(ctx context.Context, roomID int64, in domain.RoomRequest) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	return c.put(ctx, "/rooms/"+strconv.FormatInt(roomID, 10), in, nil)
}

// DeleteRoom removes a listing.
func (c *Client) DeleteRoom(ctx context.Context, roomID int64) error {
	return c.delete(ctx, "/rooms/"+strconv.FormatInt(roomID, 10))
}
