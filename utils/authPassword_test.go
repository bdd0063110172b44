package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("Password1!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Password1!" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "Password1!") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}
