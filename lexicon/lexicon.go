// Package lexicon converts raw lyrics into a flat DECTalk phoneme string
// by invoking the external lexconvert tool.
package lexicon

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the lexconvert executable looked up in PATH.
const DefaultBinary = "lexconvert"

// DefaultTimeout bounds one lexconvert invocation.
const DefaultTimeout = 30 * time.Second

// Converter runs lexconvert to turn English text into DECTalk phonemes.
type Converter struct {
	// Binary is the lexconvert executable name or path.
	Binary string

	// Timeout bounds one invocation when the caller's context carries no
	// deadline of its own.
	Timeout time.Duration
}

// NewConverter creates a converter with sensible defaults.
func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Converter{Binary: binary, Timeout: DefaultTimeout}
}

// Available checks that the lexconvert binary can be found in PATH.
func (c *Converter) Available() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return fmt.Errorf("binary %q not found in PATH: %w", c.Binary, err)
	}
	return nil
}

// Convert runs `lexconvert --phones dectalk` on the lyrics and returns the
// cleaned phoneme string, e.g. "hxehl'ow, w'rrld". Lyrics are normalized
// first: lexconvert only understands plain ASCII-ish text.
func (c *Converter) Convert(ctx context.Context, lyrics string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	lyrics = NormalizeLyrics(lyrics)

	cmd := exec.CommandContext(ctx, c.Binary, "--phones", "dectalk", lyrics)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("lexconvert timed out after %v", c.Timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("lexconvert failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("lexconvert failed: %w", err)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Warn("lexconvert wrote to stderr", "stderr", msg)
	}

	phonemes := CleanOutput(stdout.String())
	log.Debug("converted lyrics to phonemes", "phonemes", phonemes)
	return phonemes, nil
}

// CleanOutput strips lexconvert's bracket framing and unifies the
// delimiters between words as commas.
//
// lexconvert emits something like "[:phoneme on]\n[hxehl'ow] [w'rrld]\n";
// the tokenizer wants "hxehl'ow, w'rrld".
func CleanOutput(raw string) string {
	s := raw
	s = strings.Replace(s, "[:phoneme on]\n[", "", 1)
	s = strings.ReplaceAll(s, "] [", ", ")
	s = strings.ReplaceAll(s, "]\n[", ", ")
	s = strings.ReplaceAll(s, "]", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}
