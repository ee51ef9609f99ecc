package slug

import (
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator with typical labels, special
// characters, non-Latin scripts, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "surrounding and repeated whitespace",
			input: "  Hello   World  ",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Hello World 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "punctuation becomes hyphens",
			input: "How's it going?",
			want:  "how-s-it-going",
		},
		{
			name:  "symbol runs collapse to one hyphen",
			input: "Rock & Roll!! @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "accents stripped",
			input: "Café Crème Brûlée",
			want:  "cafe-creme-brulee",
		},
		{
			name:  "korean label preserved",
			input: "카지노",
			want:  "카지노",
		},
		{
			name:  "mixed korean and latin",
			input: "VIP 여행",
			want:  "vip-여행",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only symbols",
			input: "!!! --- ???",
			want:  "",
		},
		{
			name:  "leading and trailing symbols",
			input: "--hello--",
			want:  "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateIdempotent verifies that slugging a slug changes nothing.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Hello World", "카지노", "VIP 여행", "Café Crème", "Issue #42"}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

// TestGenerateTruncation verifies the length cap and that a cut never
// leaves a trailing hyphen.
func TestGenerateTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Generate(long)
	if len([]rune(got)) != MaxLen {
		t.Errorf("Generate(long) length = %d, want %d", len([]rune(got)), MaxLen)
	}

	// The 80th rune falls on a word boundary: the hyphen must be trimmed.
	boundary := strings.Repeat("a", 79) + " bcd"
	got = Generate(boundary)
	want := strings.Repeat("a", 79)
	if got != want {
		t.Errorf("Generate(boundary) = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("Generate(boundary) ends with a hyphen: %q", got)
	}
}
