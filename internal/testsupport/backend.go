// Package testsupport hosts an in-process fake of the ShareStay backend so
// the client core can be exercised end-to-end without a network. It mirrors
// the real contract surface: bearer-token auth with HS256 JWTs, a parallel
// cookie session for the OAuth flow, and the auth/room/favorite endpoints
// the client calls.
package testsupport

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

const sessionCookie = "SHARESTAY_SESSION"

type userRecord struct {
	user         domain.User
	passwordHash []byte
	suspended    bool
	suspendedMsg string
}

// Backend is the fake server. Server.URL is the API base URL to point the
// client at.
type Backend struct {
	Server *httptest.Server

	secret []byte

	mu       sync.Mutex
	users    map[string]*userRecord // keyed by username
	sessions map[string]string      // cookie value -> username
	codes    map[string]string      // oauth code -> username
	nextID   int64

	meRequests int
}

// NewBackend starts the fake server. Callers own shutdown via Close.
func NewBackend() *Backend {
	b := &Backend{
		secret:   []byte("test-secret"),
		users:    make(map[string]*userRecord),
		sessions: make(map[string]string),
		codes:    make(map[string]string),
		nextID:   1,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.POST("/auth/login", b.login)
	e.POST("/auth/logout", b.logout)
	e.POST("/users", b.signup)
	e.GET("/me", b.me)
	e.PUT("/users/:username", b.updateProfile)
	e.POST("/user/lifestyle", b.setLifestyle)
	e.GET("/rooms", b.listRooms)
	e.POST("/auth/oauth/complete", b.completeOAuth)

	b.Server = httptest.NewServer(e)
	return b
}

// Close shuts the fake server down.
func (b *Backend) Close() { b.Server.Close() }

// AddUser registers a user with the given password and returns the stored
// record.
func (b *Backend) AddUser(u domain.User, password string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == 0 {
		u.ID = b.nextID
		b.nextID++
	}
	u.Normalize()
	b.users[u.Username] = &userRecord{user: u, passwordHash: hash}
	return u
}

// Suspend marks a user suspended; logins answer 403 with msg from then on.
func (b *Backend) Suspend(username, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if rec, ok := b.users[username]; ok {
		rec.suspended = true
		rec.suspendedMsg = msg
	}
}

// MeRequestCount reports how many times /me was hit.
func (b *Backend) MeRequestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meRequests
}

// IssueToken mints a valid bearer token for a username, for tests that need
// to pre-seed the token store.
func (b *Backend) IssueToken(username string) string {
	return b.mintToken(username)
}

func (b *Backend) mintToken(username string) string {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// authenticate resolves the requester from the bearer token or the cookie
// session. Empty string means unauthenticated.
func (b *Backend) authenticate(c echo.Context) string {
	if auth := c.Request().Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(auth[7:], claims, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return b.secret, nil
		})
		if err == nil && tkn.Valid {
			if username, ok := claims["username"].(string); ok {
				return username
			}
		}
		return ""
	}

	if cookie, err := c.Cookie(sessionCookie); err == nil {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.sessions[cookie.Value]
	}
	return ""
}

func (b *Backend) login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	rec, ok := b.users[req.Username]
	b.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	if rec.suspended {
		return c.JSON(http.StatusForbidden, map[string]string{"message": rec.suspendedMsg})
	}

	return c.JSON(http.StatusOK, map[string]string{"accessToken": b.mintToken(req.Username)})
}

func (b *Backend) logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		b.mu.Lock()
		delete(b.sessions, cookie.Value)
		b.mu.Unlock()
	}
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) signup(c echo.Context) error {
	var req struct {
		Username string      `json:"username"`
		Password string      `json:"password"`
		Nickname string      `json:"nickname"`
		Role     domain.Role `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	if _, exists := b.users[req.Username]; exists {
		b.mu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
	}
	b.mu.Unlock()

	created := b.AddUser(domain.User{
		Username: req.Username,
		Nickname: req.Nickname,
		Roles:    []domain.Role{req.Role},
	}, req.Password)
	return c.JSON(http.StatusCreated, created)
}

func (b *Backend) me(c echo.Context) error {
	b.mu.Lock()
	b.meRequests++
	b.mu.Unlock()

	username := b.authenticate(c)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	b.mu.Lock()
	rec, ok := b.users[username]
	b.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, rec.user)
}

func (b *Backend) updateProfile(c echo.Context) error {
	username := b.authenticate(c)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	if username != c.Param("username") {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "cannot edit another user"})
	}

	var req struct {
		Nickname  *string `json:"nickname"`
		Address   *string `json:"address"`
		LifeStyle *string `json:"lifeStyle"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec := b.users[username]
	if req.Nickname != nil {
		rec.user.Nickname = *req.Nickname
	}
	if req.Address != nil {
		rec.user.Address = *req.Address
	}
	if req.LifeStyle != nil {
		rec.user.LifeStyle = *req.LifeStyle
	}
	return c.JSON(http.StatusOK, rec.user)
}

func (b *Backend) setLifestyle(c echo.Context) error {
	username := b.authenticate(c)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var req struct {
		Lifestyles []string `json:"lifestyles"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec := b.users[username]
	if len(req.Lifestyles) == 0 {
		rec.user.LifeStyle = ""
		return c.NoContent(http.StatusNoContent)
	}
	joined := req.Lifestyles[0]
	for _, l := range req.Lifestyles[1:] {
		joined += "," + l
	}
	rec.user.LifeStyle = joined
	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) listRooms(c echo.Context) error {
	rooms := []map[string]any{
		{
			"id": 1, "title": "Sunny studio", "rentPrice": 450000,
			"address": "Mapo-gu", "type": "STUDIO", "availabilityStatus": 0,
			"description": "near the station",
			"images":      []map[string]any{{"id": 10, "imageUrl": "/uploads/r1.jpg"}},
		},
		{
			"id": 2, "title": "Shared loft", "rentPrice": 300000,
			"address": "Jongno-gu", "type": "SHARE", "availabilityStatus": 1,
			"imageUrls": []string{"/uploads/r2.jpg"},
			"shareLink": map[string]any{"linkUrl": "https://share.example/r2"},
		},
	}
	return c.JSON(http.StatusOK, rooms)
}

// GrantCode pre-arranges an OAuth code so completeOAuth can map it to a
// user, the way a real provider redirect would.
func (b *Backend) GrantCode(code, username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.codes[code] = username
}

// completeOAuth exchanges a granted code for a cookie session.
func (b *Backend) completeOAuth(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	username, ok := b.codes[req.Code]
	if ok {
		delete(b.codes, req.Code)
	}
	value := "sess-" + strconv.FormatInt(b.nextID, 10)
	b.nextID++
	if ok {
		b.sessions[value] = username
	}
	b.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown code"})
	}
	c.SetCookie(&http.Cookie{Name: sessionCookie, Value: value, Path: "/"})
	return c.NoContent(http.StatusNoContent)
}
