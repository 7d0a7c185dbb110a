package utils

import (
	"net/http/httptest"
	"os"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := VerifyPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := VerifyPassword("wrong password", hash); err == nil {
		t.Error("wrong password accepted")
	}
	if err := VerifyPassword("anything", "not-a-valid-hash"); err == nil {
		t.Error("malformed stored hash accepted")
	}
}

func TestHashPasswordBlank(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("blank password should be rejected")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestSignToken(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		if _, err := SignToken(1, "admin@example.com"); err == nil {
			t.Error("expected error without JWT_SECRET")
		}
	})

	t.Run("with secret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		defer os.Unsetenv("JWT_SECRET")

		token, err := SignToken(1, "admin@example.com")
		if err != nil {
			t.Fatalf("SignToken failed: %v", err)
		}
		if token == "" {
			t.Error("expected a non-empty token")
		}
	})
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/transactions", 1, 20},
		{"explicit", "/transactions?page=3&limit=50", 3, 50},
		{"invalid page", "/transactions?page=zero&limit=10", 1, 10},
		{"limit capped", "/transactions?limit=5000", 1, 20},
		{"negative values", "/transactions?page=-1&limit=-5", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit := GetPaginationParams(r)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
