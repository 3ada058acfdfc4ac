package sanitizer

import "testing"

func TestNormalizeFees(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{500, 500},
		{0, 0},
		{-100, 0},
		{MaxFees, MaxFees},
		{MaxFees + 1, MaxFees},
	}

	for _, tt := range tests {
		if got := NormalizeFees(tt.input); got != tt.want {
			t.Errorf("NormalizeFees(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
