package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# path of the score file to write
output: "output/Output.spk"
# MIDI track index holding the melody
track: 0
# MIDI track name holding the melody (fuzzy-matched, overrides track)
# track_name: "Vocals"
# lexconvert binary to invoke
lexconvert: "lexconvert"
# tempo in beats per minute; prompted for when unset
# tempo: 120.5

# Phoneme score configuration
score:
  # prepend the [:phoneme on] control marker to the score
  phoneme_on: false
  # subtracted from each MIDI pitch to get the DECTalk pitch
  pitch_delta: 35
  # milliseconds given to a consonant unless overridden below
  default_consonant_duration: 90
  # per-consonant duration overrides, in milliseconds
  # consonant_durations:
  #   s: 120
  # phoneme spelling fixups applied before rendering
  translations:
    l: "ll"
  # a note-off only ends a note with the same pitch
  match_note_off_pitch: false
  # treat note-on with velocity zero as note-off
  zero_velocity_note_off: false
  # symbol emitted for silent stretches
  rest_symbol: "_"
  # separator between words in the phoneme input
  word_separator: ", "
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the midi2dectalk config file",
	Long:    paragraph(fmt.Sprintf("\n%s the midi2dectalk config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("midi2dectalk config\nmidi2dectalk config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("midi2dectalk", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
