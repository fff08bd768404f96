package domain

// FavoriteRoom is one entry of a user's favorites list.
type FavoriteRoom struct {
	RoomID   int64  `json:"roomId"`
	RoomName string `json:"roomName"`
	ImageURL string `json:"imageUrl,omitempty"`
	LikedAt  string `json:"likedAt,omitempty"`
}
