package domain

import (
	"errors"
	"testing"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "a@x.com", false},
		{"valid with name", "Ann <ann@example.org>", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"missing at", "not-an-email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Email: tt.email}
			err := u.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.email)
				}
				if !errors.Is(err, ErrInvalidEmail) {
					t.Errorf("expected ErrInvalidEmail, got %v", err)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected error to match ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
