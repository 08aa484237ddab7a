package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	actor, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if actor.UserID != "user-1" || actor.Email != "user@example.com" {
		t.Errorf("Unexpected actor: %+v", actor)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Generate("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := m.Parse(token); err != ErrExpiredToken {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _ := NewTokenManager("secret-a", time.Hour).Generate("user-1", "user@example.com")

	if _, err := NewTokenManager("secret-b", time.Hour).Parse(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenEmpty(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	if _, err := m.Parse(""); err != ErrNoToken {
		t.Errorf("Expected ErrNoToken, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct-horse" {
		t.Error("Hash must differ from the plaintext")
	}
	if !CheckPassword(hash, "correct-horse") {
		t.Error("Matching password should verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Wrong password should not verify")
	}
}
