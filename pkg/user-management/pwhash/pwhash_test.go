package pwhash

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cure-Pa55word")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if hash == "s3cure-Pa55word" {
		t.Fatal("hash should not equal the password")
	}

	match, err := ComparePasswordWithHash(hash, "s3cure-Pa55word")
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if !match {
		t.Error("password should match its own hash")
	}

	match, err = ComparePasswordWithHash(hash, "wrong-password")
	if match || err == nil {
		t.Error("wrong password should not match")
	}
}
