package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("M2D_TEST_DIR", "/tmp/m2d")

	if got := ExpandPath("$M2D_TEST_DIR/in.mid"); got != "/tmp/m2d/in.mid" {
		t.Errorf("Expected %q, got %q", "/tmp/m2d/in.mid", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if got := ExpandPath("~/in.mid"); got != filepath.Join(home, "in.mid") {
		t.Errorf("Expected %q, got %q", filepath.Join(home, "in.mid"), got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "out.spk")
	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir returned error: %v", err)
	}
	info, err := os.Stat(filepath.Dir(target))
	if err != nil {
		t.Fatalf("Expected the parent directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}

func TestBaseWithoutExt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"input/Melody.mid", "Melody"},
		{"Lyrics.txt", "Lyrics"},
		{"noext", "noext"},
		{"/abs/path/Song.v2.mid", "Song.v2"},
	}

	for _, tt := range tests {
		if got := BaseWithoutExt(tt.input); got != tt.expected {
			t.Errorf("BaseWithoutExt(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
