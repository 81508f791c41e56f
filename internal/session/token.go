package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

type State int

const (
	Absent State = iota
	Valid
	ExpiringSoon
	ExpiredOrInvalid
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case ExpiringSoon:
		return "expiring-soon"
	case ExpiredOrInvalid:
		return "expired-or-invalid"
	default:
		return "absent"
	}
}

// Inspection is the result of reading a token's claims.
type Inspection struct {
	State     State
	ExpiresAt time.Time
	Err       error
}

// Inspect reads exp from token without checking the signature; the server
// verifies signatures. A token without exp is treated as malformed.
func Inspect(token string, now time.Time, warnWindow time.Duration) Inspection {
	if token == "" {
		return Inspection{State: Absent}
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Inspection{State: ExpiredOrInvalid, Err: ErrMalformedToken}
	}
	if claims.ExpiresAt == nil {
		return Inspection{State: ExpiredOrInvalid, Err: ErrMalformedToken}
	}
	exp := claims.ExpiresAt.Time
	left := exp.Sub(now)
	switch {
	case left <= 0:
		return Inspection{State: ExpiredOrInvalid, ExpiresAt: exp, Err: ErrTokenExpired}
	case left < warnWindow:
		return Inspection{State: ExpiringSoon, ExpiresAt: exp}
	default:
		return Inspection{State: Valid, ExpiresAt: exp}
	}
}
