package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

// favoriteRoomResponse tolerates the polymorphic roomImg field: a string, an
// object with one of several URL keys, an array of either, or nothing.
type favoriteRoomResponse struct {
	RoomID   int64           `json:"roomId"`
	RoomName string          `json:"roomName"`
	RoomImg  json.RawMessage `json:"roomImg"`
	LikedAt  string          `json:"likedAt"`
}

type favoriteToggleRequest struct {
	UserID int64 `json:"userId"`
	RoomID int64 `json:"roomId"`
}

// ListFavorites returns the user's favorite rooms with image URLs resolved.
func (c *Client) ListFavorites(ctx context.Context, userID int64) ([]domain.FavoriteRoom, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))

	var raw []favoriteRoomResponse
	if err := c.get(ctx, "/favorites/list", query, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.FavoriteRoom, len(raw))
	for i, f := range raw {
		out[i] = domain.FavoriteRoom{
			RoomID:   f.RoomID,
			RoomName: f.RoomName,
			ImageURL: c.resolveAssetURL(extractImageURL(f.RoomImg)),
			LikedAt:  f.LikedAt,
		}
	}
	return out, nil
}

// ToggleFavorite flips the favorite state of a room for a user. The pair is
// sent both as query params and as a body because some backend builds demand
// one or the other.
func (c *Client) ToggleFavorite(ctx context.Context, userID, roomID int64) error {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("roomId", strconv.FormatInt(roomID, 10))
	return c.post(ctx, "/favorites/toggle", query, favoriteToggleRequest{UserID: userID, RoomID: roomID}, nil)
}

// extractImageURL digs the first usable URL out of the polymorphic image
// field.
func extractImageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		ImageURL string `json:"imageUrl"`
		URL      string `json:"url"`
		Path     string `json:"path"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		switch {
		case obj.ImageURL != "":
			return obj.ImageURL
		case obj.URL != "":
			return obj.URL
		case obj.Path != "":
			return obj.Path
		}
		return ""
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if u := extractImageURL(item); u != "" {
				return u
			}
		}
	}
	return ""
}
