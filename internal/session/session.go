// Package session owns the signed-in identity and the profile avatar. It is
// the single source of truth for "who is logged in" and "what avatar to
// show": UI surfaces hold only transient copies re-derived through Load and
// the subscription channel, never a shared mutable reference.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the currently authenticated user. The zero value is
// the anonymous session.
type Session struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipDate string `json:"membershipDate,omitempty"`
}

// Anonymous reports whether the session carries no identity.
func (s Session) Anonymous() bool {
	return s.ID == "" && s.Email == ""
}

// MemberSince returns the year the membership started, defaulting to the
// given fallback when the date is absent or unparseable.
func (s Session) MemberSince(fallback int) int {
	if s.MembershipDate == "" {
		return fallback
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s.MembershipDate); err == nil {
			return t.Year()
		}
	}
	return fallback
}

// TokenExpiry inspects an access token and, when it is a parseable JWT with
// an expiry claim, returns that expiry. The signature is not verified; the
// backend remains the authority on token validity.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
