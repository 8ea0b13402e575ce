package util

import (
	"testing"
	"time"

	"examen_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "maria@example.com", Role: model.Instructor}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Instructor {
		t.Errorf("Role = %q, want instructor", claims.Role)
	}

	t.Run("wrong secret is rejected", func(t *testing.T) {
		if _, err := ParseJWT(token, "other"); err == nil {
			t.Error("token verified against the wrong secret")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		stale, err := GenerateJWT(user, "secret", -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		if _, err := ParseJWT(stale, "secret"); err == nil {
			t.Error("expired token verified")
		}
	})
}
