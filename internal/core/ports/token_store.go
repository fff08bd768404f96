package ports

// TokenStore holds the bearer credential and the last-used username for the
// lifetime of the client process. Implementations never fail: reads degrade
// to "absent" and writes are no-ops when storage is unavailable.
//
// Only the session service may write the store; the API transport and the
// session service read it. Keeping a single writer prevents drift between
// what the UI believes is logged in and what credential is actually sent.
type TokenStore interface {
	// AccessToken returns the stored token and whether one is present.
	AccessToken() (string, bool)
	// SetAccessToken stores a token. An empty value clears the entry
	// entirely so presence checks stay unambiguous.
	SetAccessToken(token string)
	// StoredUsername returns the remembered login identifier.
	StoredUsername() (string, bool)
	// SetStoredUsername remembers a login identifier; empty clears it.
	SetStoredUsername(username string)
	// ClearAll removes both entries. Used on logout and on detected
	// authentication failure.
	ClearAll()
}
