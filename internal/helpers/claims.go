package helpers

// SessionClaims is the request-scoped session identity: the token claims
// plus the profile fields the views show. Handlers read it from the gin
// context; nothing caches it across requests.
type SessionClaims struct {
	*CustomClaims
	UserID      string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// IsOwner reports whether the session belongs to the given user.
func (sc *SessionClaims) IsOwner(userID string) bool {
	return sc.UserID == userID
}
