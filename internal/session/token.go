package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Role        string `json:"role"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

// signSession serializes a session into a signed token. The issued-at
// claim carries the session start; validity is checked against it by the
// gate, not by the token library.
func signSession(s *Session, secret string) (string, error) {
	claims := sessionClaims{
		Role:        string(s.Role),
		Username:    s.Username,
		DisplayName: s.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.CreatedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseSession(tokenStr, secret string) (*Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	var createdAt time.Time
	if claims.IssuedAt != nil {
		createdAt = claims.IssuedAt.Time
	}

	return &Session{
		Role:        Role(claims.Role),
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		CreatedAt:   createdAt,
	}, nil
}
