package utils

import (
	"testing"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		region      string
		expected    string
		shouldError bool
	}{
		{
			name:     "Italian mobile with country code",
			input:    "+393331234567",
			region:   "IT",
			expected: "+393331234567",
		},
		{
			name:     "Italian mobile without country code",
			input:    "3331234567",
			region:   "IT",
			expected: "+393331234567",
		},
		{
			name:     "Italian mobile with spaces",
			input:    "333 123 4567",
			region:   "IT",
			expected: "+393331234567",
		},
		{
			name:     "Italian mobile with leading and trailing spaces",
			input:    "  3331234567  ",
			region:   "IT",
			expected: "+393331234567",
		},
		{
			name:     "foreign number with explicit country code",
			input:    "+40721234567",
			region:   "IT",
			expected: "+40721234567",
		},
		{
			name:        "too short",
			input:       "123",
			region:      "IT",
			shouldError: true,
		},
		{
			name:        "letters",
			input:       "not a phone",
			region:      "IT",
			shouldError: true,
		},
		{
			name:        "empty",
			input:       "",
			region:      "IT",
			shouldError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tc.input, tc.region)
			if tc.shouldError {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for %q: %v", tc.input, err)
				return
			}
			if got != tc.expected {
				t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
