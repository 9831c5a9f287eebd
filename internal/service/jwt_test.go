package service

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("user_id = %d, want 42", userID)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Errorf("ParseJWT(%q) accepted invalid token", tok)
		}
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	InitJWT()
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	InitJWT()
	if _, err := ParseJWT(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}
