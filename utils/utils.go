package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessTokenTTL is how long a login stays valid.
const AccessTokenTTL = 12 * time.Hour

// PasswordCost is the bcrypt cost used for new passwords.
var PasswordCost = 12

// TokenClaims is what the API trusts about the caller.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// GenerateJWT signs an access token for the given user. It returns the token and its expiry.
func GenerateJWT(secret string, claims TokenClaims) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	exp := time.Now().Add(AccessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"type":  "access",
		"exp":   exp.Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ValidateJWT parses and validates an access token.
func ValidateJWT(secret, tokenStr string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return TokenClaims{}, fmt.Errorf("token parsing error: %w", err)
	}
	if !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}
	if t, _ := mc["type"].(string); t != "access" {
		return TokenClaims{}, errors.New("not an access token")
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return TokenClaims{}, errors.New("token has no subject")
	}
	return TokenClaims{UserID: sub, Email: email, Role: role}, nil
}

func ValidatePassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}
