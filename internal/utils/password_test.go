package utils

import "testing"

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"ok", "Abcdef12", true},
		{"ok max length", "Abcdef12Abcdef12", true},
		{"too short", "Abc12de", false},
		{"too long", "Abcdef12Abcdef12X", false},
		{"no upper", "abcdef12", false},
		{"no lower", "ABCDEF12", false},
		{"no digit", "Abcdefgh", false},
		{"whitespace", "Abcdef 12", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidPassword(tc.in); got != tc.want {
				t.Fatalf("ValidPassword(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef12", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Abcdef12" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "Abcdef12") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "Abcdef13") {
		t.Fatal("wrong password accepted")
	}
}
