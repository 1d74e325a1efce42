package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignToken issues an HS256 JWT carrying the user id and email.
// Expiry comes from JWT_EXP_HOURS (default 24).
func SignToken(userID int, email string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}

	expHours := 24
	if h, err := strconv.Atoi(os.Getenv("JWT_EXP_HOURS")); err == nil && h > 0 {
		expHours = h
	}

	claims := jwt.MapClaims{
		"uid":  userID,
		"user": email,
		"exp":  time.Now().Add(time.Duration(expHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
