package identity

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// tokenUsable reports whether a supplied custom token is worth presenting to
// the provider: parseable as a JWT and not already expired. The provider still
// verifies the signature; this only avoids a doomed round trip.
func tokenUsable(token string) bool {
	parser := &jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.VerifyExpiresAt(time.Now().Unix(), false)
}
