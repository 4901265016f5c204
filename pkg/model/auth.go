package model

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type RefreshToken struct {
	BaseModel

	UserID    uuid.UUID `json:"user_id" gorm:"index;type:uuid;not null"`
	Sign      string    `json:"-" gorm:"index;not null"`
	ExpiredAt time.Time `json:"expired_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

type AccessTokenClaims struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	jwt.StandardClaims
}

type RefreshTokenClaims struct {
	jwt.StandardClaims
}

type LoginRequest struct {
	Email    *string `json:"email" valid:"Required"`
	Password *string `json:"password" valid:"Required"`
}

type RefreshRequest struct {
	RefreshToken *string `json:"refresh_token" valid:"Required"`
}

type LoginResponse struct {
	Token        string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}
