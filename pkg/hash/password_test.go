package hash

import (
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "GuestPass123!",
			wantErr:  false,
		},
		{
			name:     "minimum length password",
			password: "Pass123!",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "short",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Hash(tt.password)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Hash() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Hash() unexpected error = %v", err)
				return
			}

			if h == "" {
				t.Error("Hash() returned empty hash")
			}

			if h == tt.password {
				t.Error("Hash() returned unhashed password")
			}

			if !strings.HasPrefix(h, "$2a$12$") {
				t.Errorf("Hash() invalid bcrypt format, got = %s", h[:10])
			}
		})
	}
}

func TestCompare(t *testing.T) {
	password := "GuestAccountSecret1!"
	h, err := Hash(password)
	if err != nil {
		t.Fatalf("Failed to generate hash: %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "correct password",
			password: password,
			wantErr:  false,
		},
		{
			name:     "incorrect password",
			password: "WrongPassword",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "case sensitive",
			password: strings.ToUpper(password),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(h, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Error("Compare() expected error but got none")
				}
			} else if err != nil {
				t.Errorf("Compare() unexpected error = %v", err)
			}
		})
	}
}
