package utils

import "testing"

func TestIsValidEstado(t *testing.T) {
	for _, estado := range []string{"P", "A", "T"} {
		if !IsValidEstado(estado) {
			t.Errorf("IsValidEstado(%q) = false, want true", estado)
		}
	}
	for _, estado := range []string{"", "p", "X", "PA"} {
		if IsValidEstado(estado) {
			t.Errorf("IsValidEstado(%q) = true, want false", estado)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"owner", "admin", "teacher"} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "root", "Owner"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}

func TestIsValidFileExtension(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png"}

	tests := []struct {
		filename string
		want     bool
	}{
		{"foto.jpg", true},
		{"foto.JPG", true},
		{"foto.png", true},
		{"foto.gif", false},
		{"foto", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidFileExtension(tt.filename, allowed); got != tt.want {
			t.Errorf("IsValidFileExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secreto" {
		t.Error("password stored in plain text")
	}
	if err := CheckPassword("secreto", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("equivocada", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Ana\x00 Quispe  "); got != "Ana Quispe" {
		t.Errorf("got %q", got)
	}
}
