// Package token mints and parses the HS256 bearer tokens used by the API.
// Client tokens authenticate tenant owners; staff tokens are scoped to a
// single event and additionally carry the staff id.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds stored in the "kind" claim.
const (
	KindClient = "client"
	KindStaff  = "staff"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongKind    = errors.New("token kind mismatch")
)

// Claims is the decoded payload of an access token.
type Claims struct {
	Kind     string
	ClientID uint
	StaffID  uint
	EventID  uint
}

// NewClientToken signs an access token for a tenant owner.
func NewClientToken(secret string, clientID uint, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"kind":      KindClient,
		"client_id": clientID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewStaffToken signs an access token for event staff. The event id is
// baked into the token so every staff request is pre-scoped.
func NewStaffToken(secret string, staffID, eventID, clientID uint, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"kind":      KindStaff,
		"staff_id":  staffID,
		"event_id":  eventID,
		"client_id": clientID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse validates the signature and expiry and returns the decoded claims.
func Parse(secret, raw string) (*Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Kind:     asString(mc["kind"]),
		ClientID: asUint(mc["client_id"]),
		StaffID:  asUint(mc["staff_id"]),
		EventID:  asUint(mc["event_id"]),
	}
	if claims.Kind != KindClient && claims.Kind != KindStaff {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// JSON numbers decode as float64; tolerate both shapes.
func asUint(v any) uint {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return uint(n)
	case uint:
		return n
	case int:
		if n < 0 {
			return 0
		}
		return uint(n)
	}
	return 0
}
