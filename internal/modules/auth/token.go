package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
	jwt.StandardClaims
}

// SignToken issues an HS256 token carrying the identity claims, valid for 24h.
func SignToken(ident Identity, secret []byte) (string, error) {
	claims := &Claims{
		Email:          ident.Email,
		FirstName:      ident.FirstName,
		LastName:       ident.LastName,
		Role:           ident.Role,
		Phone:          ident.Phone,
		ProfilePicture: ident.ProfilePicture,
		StandardClaims: jwt.StandardClaims{
			Subject:   ident.Email,
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a signed token and returns the identity it carries.
func ParseToken(tokenString string, secret []byte) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	return Identity{
		Email:          claims.Email,
		FirstName:      claims.FirstName,
		LastName:       claims.LastName,
		Role:           claims.Role,
		Phone:          claims.Phone,
		ProfilePicture: claims.ProfilePicture,
	}, nil
}
