package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "erd.png", false},
		{"nested", "out/diagrams/erd.svg", false},
		{"relative parent", "../erd.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1100), true},
		{"null byte", "erd\x00.png", true},
		{"newline", "erd\n.png", true},
		{"trailing slash", "out/", true},
		{"dot", ".", true},
		{"dot dot", "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "users", false},
		{"with spaces", "order items", false},
		{"unicode", "ユーザー", false},
		{"separator char", "a_b", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "us\x00ers", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTableName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
