package auth

import (
	"errors"
	"time"

	"palette/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type MemberClaims struct {
	MemberID uint64 `json:"member_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the member
func GenerateToken(secret string, member *models.Member, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := MemberClaims{
		MemberID: member.ID,
		Email:    member.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*MemberClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MemberClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid || claims.MemberID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
