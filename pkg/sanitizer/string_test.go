package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Advanced Physics  ",
			want:  "Advanced Physics",
		},
		{
			name:  "multiple spaces between words",
			input: "Advanced    Physics",
			want:  "Advanced Physics",
		},
		{
			name:  "tabs and newlines",
			input: "Advanced\t\nPhysics",
			want:  "Advanced Physics",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Maths & Stats (Hons.) ",
			want:  "Maths & Stats (Hons.)",
		},
		{
			name:  "unicode preserved",
			input: "  Français  niveau B2 ",
			want:  "Français niveau B2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Asha.Rao@Example.COM  ", "asha.rao@example.com"},
		{"already@lower.dev", "already@lower.dev"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
