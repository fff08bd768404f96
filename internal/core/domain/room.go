package domain

// AvailabilityStatus represents whether a room can currently be booked.
// The backend transports it as an integer; the client works with the
// symbolic form.
type AvailabilityStatus string

const (
	RoomAvailable   AvailabilityStatus = "AVAILABLE"
	RoomUnavailable AvailabilityStatus = "UNAVAILABLE"
	RoomPending     AvailabilityStatus = "PENDING"
)

// availabilityCodes maps the backend integer encoding to the symbolic form.
var availabilityCodes = map[int]AvailabilityStatus{
	0: RoomAvailable,
	1: RoomUnavailable,
	2: RoomPending,
}

// AvailabilityFromCode converts the backend integer encoding. Unknown codes
// degrade to RoomAvailable, matching the permissive behaviour of the web
// client.
func AvailabilityFromCode(code int) AvailabilityStatus {
	if s, ok := availabilityCodes[code]; ok {
		return s
	}
	return RoomAvailable
}

// Code converts the symbolic form back to the backend integer encoding.
func (s AvailabilityStatus) Code() int {
	for code, status := range availabilityCodes {
		if status == s {
			return code
		}
	}
	return 0
}

// RoomImage is one image attached to a room listing. URLs are absolute once
// the room has passed through the mapper.
type RoomImage struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId,omitempty"`
	ImageURL string `json:"imageUrl"`
	Primary  bool   `json:"isPrimary,omitempty"`
}

// RoomSummary is the normalized room shape used for lists, search results
// and detail views alike.
type RoomSummary struct {
	ID           int64              `json:"id"`
	HostID       int64              `json:"hostId,omitempty"`
	Title        string             `json:"title"`
	RentPrice    int64              `json:"rentPrice"`
	Address      string             `json:"address"`
	Type         string             `json:"type"`
	Latitude     float64            `json:"latitude,omitempty"`
	Longitude    float64            `json:"longitude,omitempty"`
	Availability AvailabilityStatus `json:"availabilityStatus"`
	Description  string             `json:"description,omitempty"`
	SafetyScore  float64            `json:"safetyScore,omitempty"`
	TrustScore   float64            `json:"trustScore,omitempty"`
	Images       []RoomImage        `json:"images,omitempty"`
	ShareLinkURL string             `json:"shareLinkUrl,omitempty"`
}

// RoomRequest is the payload for creating or updating a listing. Mirrors the
// backend RoomRequest DTO one to one.
type RoomRequest struct {
	HostID       int64   `json:"hostId" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	RentPrice    int64   `json:"rentPrice" validate:"required,gt=0"`
	Address      string  `json:"address" validate:"required"`
	Type         string  `json:"type" validate:"required"`
	Availability int     `json:"availabilityStatus"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// RoomSearchQuery captures the supported listing filters.
type RoomSearchQuery struct {
	Keyword  string
	Type     string
	MinPrice int64
	MaxPrice int64
}

// NearQuery asks for rooms around a map coordinate.
type NearQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}
