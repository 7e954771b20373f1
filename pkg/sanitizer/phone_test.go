package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+972541234567",
			want:  "+972541234567",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "with dashes",
			input: "+972-54-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (202) 456-1111",
			want:  "+12024561111",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972541234567  ",
			want:  "+972541234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "no plus sign",
			input: "972541234567",
			want:  "+972541234567",
		},
		{
			name:  "national UK number",
			input: "+44 20 7031 3000",
			want:  "+442070313000",
		},
		{
			name:  "too short",
			input: "12345",
			want:  "",
		},
		{
			name:  "letters",
			input: "call me",
			want:  "",
		},
		{
			name:  "mixed special chars",
			input: " +972-54.123 4567 ",
			want:  "+972541234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
