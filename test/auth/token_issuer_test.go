package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	"github.com/syncroapp/syncro-backend/internal/common/clock"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

func TestIssueAccessTokenClaims(t *testing.T) {
	// Anchored at the wall clock so verification, which checks expiry
	// against real time, accepts the token on any test run date.
	mockClock := clock.NewMockClock(time.Now())
	issuer := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{
		ID:   "u1",
		Name: "Alice",
		Role: userdomain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := jwtverify.ParseToken(token, []byte(testJWTSecret))
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != "u1" || claims.Name != "Alice" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIssueAccessTokenExpiry(t *testing.T) {
	mockClock := clock.NewMockClock(fixedNow())
	issuer := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "u1", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithTimeFunc(fixedNow))
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	mapClaims := parsed.Claims.(jwt.MapClaims)
	exp := int64(mapClaims["exp"].(float64))
	iat := int64(mapClaims["iat"].(float64))

	if iat != fixedNow().Unix() {
		t.Fatalf("expected iat %d, got %d", fixedNow().Unix(), iat)
	}
	if exp-iat != int64((48 * time.Hour).Seconds()) {
		t.Fatalf("expected 48h lifetime, got %ds", exp-iat)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	mockClock := clock.NewMockClock(time.Now())
	issuer := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "u1", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := jwtverify.ParseToken(token, []byte("another-secret-another-secret-xx")); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	mockClock := clock.NewMockClock(time.Now().Add(-72 * time.Hour))
	issuer := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "u1", Name: "Alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := jwtverify.ParseToken(token, []byte(testJWTSecret)); err == nil {
		t.Fatal("expected verification to reject an expired token")
	}
}
