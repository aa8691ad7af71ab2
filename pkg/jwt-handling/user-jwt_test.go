package jwthandling

import (
	"testing"
	"time"
)

func TestUserTokenRoundTrip(t *testing.T) {
	token, err := GenerateNewUserToken(time.Hour, "64f1c0ffee", "user@test.de", "testkey")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	claims, valid, err := ValidateUserToken(token, "testkey")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !valid {
		t.Fatal("token should be valid")
	}
	if claims.UserID != "64f1c0ffee" {
		t.Errorf("unexpected userId: %s", claims.UserID)
	}
	if claims.Email != "user@test.de" {
		t.Errorf("unexpected email: %s", claims.Email)
	}
}

func TestUserTokenWithWrongKey(t *testing.T) {
	token, err := GenerateNewUserToken(time.Hour, "id", "user@test.de", "testkey")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	_, valid, err := ValidateUserToken(token, "otherkey")
	if err == nil && valid {
		t.Error("token signed with a different key should not validate")
	}
}

func TestExpiredUserToken(t *testing.T) {
	token, err := GenerateNewUserToken(-time.Minute, "id", "user@test.de", "testkey")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	_, valid, err := ValidateUserToken(token, "testkey")
	if valid {
		t.Error("expired token should not validate")
	}
	if err == nil {
		t.Error("expected an expiry error")
	}
}
