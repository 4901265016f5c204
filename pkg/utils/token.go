package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"logiroute/ms-delivery/pkg/model"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Header["alg"])
		}
		return []byte(secret), nil
	}
}

// CreateAccessToken signs a short lived token carrying the user's role.
func CreateAccessToken(user model.User, secret string, ttl time.Duration) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(ttl).Unix()
	claims := &model.AccessTokenClaims{
		Name: user.Name,
		Role: user.Role,
		StandardClaims: jwt.StandardClaims{
			Audience:  audienceAccess,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt,
			Issuer:    TOKEN_ISSUER,
			Subject:   user.ID.String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, expiresAt, err
}

// CreateRefreshToken returns the signed token and its signature part, which is what gets stored.
func CreateRefreshToken(userID uuid.UUID, secret string, ttl time.Duration) (signed string, sign string, expiredAt time.Time, err error) {
	now := time.Now()
	expiredAt = now.Add(ttl)
	claims := &model.RefreshTokenClaims{
		StandardClaims: jwt.StandardClaims{
			Audience:  audienceRefresh,
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: expiredAt.Unix(),
			Issuer:    TOKEN_ISSUER,
			Subject:   userID.String(),
		},
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", expiredAt, err
	}
	return signed, TokenSign(signed), expiredAt, nil
}

func TokenSign(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}

func ParseAccessToken(str string, secret string) (*model.AccessTokenClaims, error) {
	token, err := jwt.ParseWithClaims(str, &model.AccessTokenClaims{}, keyFunc(secret))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*model.AccessTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyAudience(audienceAccess, true) {
		return nil, errors.New("not an access token")
	}
	if !model.IsValidRole(string(claims.Role)) {
		return nil, errors.New("invalid role claim")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, errors.New("invalid subject claim")
	}
	return claims, nil
}

func ParseRefreshToken(str string, secret string) (*model.RefreshTokenClaims, error) {
	token, err := jwt.ParseWithClaims(str, &model.RefreshTokenClaims{}, keyFunc(secret))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*model.RefreshTokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyAudience(audienceRefresh, true) {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}
