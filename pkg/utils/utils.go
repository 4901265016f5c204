package utils

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"logiroute/ms-delivery/pkg/model"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// VerifyPassword requires PASSWORD_MIN_LENGTH characters with at least one
// uppercase, lowercase, digit and special character.
func VerifyPassword(password string) error {
	var upper, lower, digit, special bool
	if len([]rune(password)) < PASSWORD_MIN_LENGTH {
		return errors.New("password must be at least 12 characters")
	}
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			special = true
		}
	}
	var missing []string
	if !upper {
		missing = append(missing, "uppercase letter")
	}
	if !lower {
		missing = append(missing, "lowercase letter")
	}
	if !digit {
		missing = append(missing, "digit")
	}
	if !special {
		missing = append(missing, "special character")
	}
	if len(missing) > 0 {
		return errors.New("password must contain at least one " + strings.Join(missing, ", "))
	}
	return nil
}

func CurrentUser(c *http.Request) (uuid.UUID, error) {
	userIdStr := c.Header.Get(HeaderUserID)
	if strings.Contains(userIdStr, "|") {
		userIdStr = strings.Split(userIdStr, "|")[0]
	}
	res, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, err
	}
	return res, nil
}

// CurrentCaller reads both identity headers forwarded by the gateway.
func CurrentCaller(c *http.Request) (model.Caller, error) {
	id, err := CurrentUser(c)
	if err != nil {
		return model.Caller{}, err
	}
	role := c.Header.Get(HeaderUserRole)
	if !model.IsValidRole(role) {
		return model.Caller{}, errors.New("invalid role header")
	}
	return model.Caller{ID: id, Role: model.Role(role)}, nil
}
