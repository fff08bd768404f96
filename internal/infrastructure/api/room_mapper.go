package api

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

// roomImageResponse matches the backend RoomImageResponse DTO.
type roomImageResponse struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"imageUrl"`
}

// roomResponse matches both the backend RoomResponse and RoomDetailResponse
// DTOs. Some deployments return an images list, some only imageUrls, and the
// share link arrives either flat or as an object.
type roomResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	RentPrice    int64               `json:"rentPrice"`
	Address      string              `json:"address"`
	Type         string              `json:"type"`
	Availability availabilityCode    `json:"availabilityStatus"`
	Description  string              `json:"description"`
	Latitude     float64             `json:"latitude"`
	Longitude    float64             `json:"longitude"`
	Images       []roomImageResponse `json:"images"`
	ImageURLs    []string            `json:"imageUrls"`
	ShareLinkURL string              `json:"shareLinkUrl"`
	ShareLink    *shareLinkResponse  `json:"shareLink"`
}

type shareLinkResponse struct {
	LinkURL string `json:"linkUrl"`
}

// availabilityCode tolerates both the integer encoding and the symbolic
// string some endpoints emit.
type availabilityCode struct {
	status domain.AvailabilityStatus
}

func (a *availabilityCode) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		a.status = domain.AvailabilityFromCode(code)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	a.status = domain.AvailabilityStatus(s)
	return nil
}

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// resolveAssetURL prefixes relative image paths with the asset base URL.
// Absolute URLs pass through untouched.
func (c *Client) resolveAssetURL(value string) string {
	if value == "" || c.assetBase == "" || absoluteURL.MatchString(value) {
		return value
	}
	return c.assetBase + "/" + strings.TrimPrefix(value, "/")
}

// mapRoom normalizes a backend room payload into the client shape: images
// from whichever field the backend filled, URLs made absolute, share link
// flattened.
func (c *Client) mapRoom(r roomResponse) domain.RoomSummary {
	images := make([]domain.RoomImage, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, domain.RoomImage{
			ID:       img.ID,
			RoomID:   r.ID,
			ImageURL: c.resolveAssetURL(img.ImageURL),
		})
	}
	if len(images) == 0 {
		for i, u := range r.ImageURLs {
			images = append(images, domain.RoomImage{
				ID:       int64(i),
				RoomID:   r.ID,
				ImageURL: c.resolveAssetURL(u),
			})
		}
	}

	shareLink := r.ShareLinkURL
	if shareLink == "" && r.ShareLink != nil {
		shareLink = r.ShareLink.LinkURL
	}

	availability := r.Availability.status
	if availability == "" {
		availability = domain.RoomAvailable
	}

	return domain.RoomSummary{
		ID:           r.ID,
		Title:        r.Title,
		RentPrice:    r.RentPrice,
		Address:      r.Address,
		Type:         r.Type,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Availability: availability,
		Description:  r.Description,
		Images:       images,
		ShareLinkURL: shareLink,
	}
}

func (c *Client) mapRooms(rs []roomResponse) []domain.RoomSummary {
	out := make([]domain.RoomSummary, len(rs))
	for i, r := range rs {
		out[i] = c.mapRoom(r)
	}
	return out
}
