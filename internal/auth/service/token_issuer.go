package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonclock "github.com/syncroapp/syncro-backend/internal/common/clock"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type TokenIssuer struct {
	jwtSecret      []byte
	clock          commonclock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(jwtSecret string, accessTokenTTL time.Duration, clock commonclock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub":  string(user.ID),
		"usr":  user.Name,
		"role": user.Role,
		"exp":  now.Add(ti.accessTokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(ti.jwtSecret)
}
