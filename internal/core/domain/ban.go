package domain

import "time"

// BanRecord is an active or historical suspension of a user account.
type BanRecord struct {
	BanID     int64      `json:"banId"`
	UserID    int64      `json:"userId"`
	Username  string     `json:"username,omitempty"`
	Reason    string     `json:"reason"`
	Active    bool       `json:"active"`
	BannedAt  time.Time  `json:"bannedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	LiftedAt  *time.Time `json:"liftedAt,omitempty"`
}

// BanInput is the payload for imposing a new suspension.
type BanInput struct {
	Reason    string     `json:"reason" validate:"required"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
