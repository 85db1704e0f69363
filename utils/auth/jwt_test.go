package auth

import (
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-do-not-use-in-production",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "portal-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, jti, err := m.GenerateAccessToken(42, "user@campus.edu", "student", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a JTI")
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@campus.edu" || claims.Role != "student" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("TokenVersion = %d, want 3", claims.TokenVersion)
	}
	if claims.ID != jti {
		t.Errorf("claims.ID = %q, want %q", claims.ID, jti)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := testManager()

	token, _, err := m.GenerateRefreshToken(1, "a@b.c", "admin", 0)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().GenerateAccessToken(1, "a@b.c", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager(JWTConfig{
		Secret: "test-secret-do-not-use-in-production",
		Expiry: -time.Minute, // already expired at issue time
	})

	token, _, err := m.GenerateAccessToken(1, "a@b.c", "student", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testManager().ValidateToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
