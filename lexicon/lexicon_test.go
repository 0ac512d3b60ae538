package lexicon

import "testing"

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "two words",
			raw:      "[:phoneme on]\n[hxehl'ow] [w'rrld]\n",
			expected: "hxehl'ow, w'rrld",
		},
		{
			name:     "single word",
			raw:      "[:phoneme on]\n[w'rrld]\n",
			expected: "w'rrld",
		},
		{
			name:     "words split across lines",
			raw:      "[:phoneme on]\n[hxehl'ow]\n[w'rrld]\n",
			expected: "hxehl'ow, w'rrld",
		},
		{
			name:     "no control prefix",
			raw:      "[hxehl'ow] [w'rrld]\n",
			expected: "[hxehl'ow, w'rrld",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanOutput(tt.raw); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeLyrics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "accents stripped",
			input:    "naïve café",
			expected: "naive cafe",
		},
		{
			name:     "curly quotes straightened",
			input:    "don’t say “hello”",
			expected: `don't say "hello"`,
		},
		{
			name:     "whitespace collapsed",
			input:    "hello\n\n  world\t!",
			expected: "hello world !",
		},
		{
			name:     "plain text untouched",
			input:    "hello world",
			expected: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLyrics(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewConverterDefaults(t *testing.T) {
	converter := NewConverter("")
	if converter.Binary != DefaultBinary {
		t.Errorf("Expected binary %q, got %q", DefaultBinary, converter.Binary)
	}
	if converter.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, converter.Timeout)
	}
}

func TestAvailableMissingBinary(t *testing.T) {
	converter := NewConverter("definitely-not-a-real-binary-20b1c3")
	if err := converter.Available(); err == nil {
		t.Error("Expected an error for a missing binary, got nil")
	}
}
