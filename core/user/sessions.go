package user

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("user")

var (
	ErrInvalidSession = errors.New("Error parsing token, will be notified")
	ErrSessionExpired = errors.New("Token expired, request new one")
)

type sessionClaims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// Sessions issues and parses the signed tokens standing for a logged in user.
type Sessions struct {
	secret []byte
	TTL    time.Duration
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), TTL: 24 * time.Hour * 7}
}

// Issue a session token for userID.
func (s *Sessions) Issue(userID string) (string, error) {
	claims := sessionClaims{
		userID,
		jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.TTL).Unix(),
			Issuer:    "artworked",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse returns the user id a token was issued for.
func (s *Sessions) Parse(token string) (string, error) {
	claims := sessionClaims{}
	signed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if verr, ok := err.(*jwt.ValidationError); ok && verr.Errors&jwt.ValidationErrorExpired != 0 {
		return "", ErrSessionExpired
	}
	if err != nil || !signed.Valid || claims.UserID == "" {
		return "", ErrInvalidSession
	}
	return claims.UserID, nil
}
