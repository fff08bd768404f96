package ports

import (
	"context"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

// SignupInput is the registration payload.
type SignupInput struct {
	Username         string      `json:"username" validate:"required,email"`
	Password         string      `json:"password" validate:"required,min=8"`
	Nickname         string      `json:"nickname" validate:"required"`
	Address          string      `json:"address" validate:"required"`
	PhoneNumber      string      `json:"phoneNumber" validate:"required"`
	LifeStyle        string      `json:"lifeStyle"`
	Role             domain.Role `json:"role" validate:"required,oneof=GUEST HOST ADMIN"`
	HostIntroduction string      `json:"hostIntroduction,omitempty"`
	HostTermsAgreed  bool        `json:"hostTermsAgreed,omitempty"`
}

// ProfileUpdateInput carries the editable profile fields. Nil pointers mean
// "leave unchanged"; the update endpoint receives only the set fields.
type ProfileUpdateInput struct {
	Nickname         *string `json:"nickname,omitempty"`
	Address          *string `json:"address,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	LifeStyle        *string `json:"lifeStyle,omitempty"`
	HostIntroduction *string `json:"hostIntroduction,omitempty"`
}

// AuthAPI is the authentication surface of the remote backend.
type AuthAPI interface {
	// Login exchanges credentials for an opaque access token.
	Login(ctx context.Context, username, password string) (string, error)
	// Signup registers a new account. It does not authenticate.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// CurrentUser fetches the profile of the authenticated user, whether
	// the credential is the bearer token or an OAuth cookie session.
	CurrentUser(ctx context.Context) (*domain.User, error)
	// UpdateProfile applies a partial update and returns the updated
	// profile when the backend echoes one.
	UpdateProfile(ctx context.Context, username string, in ProfileUpdateInput) (*domain.User, error)
	// CompleteOAuth hands the provider's code to the backend, which
	// answers by establishing a cookie-based session.
	CompleteOAuth(ctx context.Context, code string) error
	// Logout invalidates any cookie-based session. Best effort.
	Logout(ctx context.Context) error
	// SetLifestyles replaces the user's lifestyle selection.
	SetLifestyles(ctx context.Context, lifestyles []string) error
}

// RoomAPI is the listing surface of the remote backend.
type RoomAPI interface {
	ListRooms(ctx context.Context) ([]domain.RoomSummary, error)
	SearchRooms(ctx context.Context, q domain.RoomSearchQuery) ([]domain.RoomSummary, error)
	RoomDetail(ctx context.Context, roomID int64) (*domain.RoomSummary, error)
	RoomsNear(ctx context.Context, q domain.NearQuery) ([]domain.RoomSummary, error)
	CreateRoom(ctx context.Context, in domain.RoomRequest) (*domain.RoomSummary, error)
	UpdateRoom(ctx context.Context, roomID int64, in domain.RoomRequest) error
	DeleteRoom(ctx context.Context, roomID int64) error
}

// FavoriteAPI manages a user's favorite rooms.
type FavoriteAPI interface {
	ListFavorites(ctx context.Context, userID int64) ([]domain.FavoriteRoom, error)
	ToggleFavorite(ctx context.Context, userID, roomID int64) error
}

// AdminAPI is the user and ban management surface, ADMIN only server-side.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListBans(ctx context.Context) ([]domain.BanRecord, error)
	UserBans(ctx context.Context, userID int64) ([]domain.BanRecord, error)
	UserBanHistory(ctx context.Context, userID int64) ([]domain.BanRecord, error)
	BanUser(ctx context.Context, userID int64, in domain.BanInput) error
	LiftBan(ctx context.Context, banID int64) error
}

// StatsAPI exposes server-computed safety and platform statistics.
type StatsAPI interface {
	DistrictSafety(ctx context.Context) ([]domain.DistrictSafety, error)
	Statistics(ctx context.Context) ([]domain.Statistic, error)
}
