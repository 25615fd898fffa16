package helper

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("p")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "p" {
		t.Fatal("password stored in plain text")
	}
	if err := CheckPasswordHash(hash, "p"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPasswordHash(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
