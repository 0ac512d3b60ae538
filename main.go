// Package main provides the entry point for the midi2dectalk CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/brianbaillargeon1/MIDI2DECTalk/lexicon"
	"github.com/brianbaillargeon1/MIDI2DECTalk/melody"
	"github.com/brianbaillargeon1/MIDI2DECTalk/score"
	"github.com/brianbaillargeon1/MIDI2DECTalk/ui"
	"github.com/brianbaillargeon1/MIDI2DECTalk/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile      string
	tempo           float64
	outputPath      string
	trackIndex      int
	trackName       string
	phonemeOn       bool
	copyToClipboard bool
	watch           bool
	lexconvertBin   string

	rootCmd = &cobra.Command{
		Use:   "midi2dectalk LYRICS MELODY",
		Short: "Sing lyrics to a MIDI melody, in DECTalk",
		Long: paragraph(
			fmt.Sprintf("\nConvert lyrics and a MIDI melody into a %s phoneme score, time-synced to the melody.", keyword("DECTalk")),
		),
		Example:          "  midi2dectalk input/Lyrics.txt input/Melody.mid -b 120.5",
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ExactArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	// grab config values from Viper
	outputPath = viper.GetString("output")
	trackIndex = viper.GetInt("track")
	trackName = viper.GetString("track_name")
	lexconvertBin = viper.GetString("lexconvert")
	phonemeOn = viper.GetBool("score.phoneme_on")

	if trackIndex < 0 {
		return fmt.Errorf("track index must not be negative, got %d", trackIndex)
	}
	if outputPath == "" {
		return errors.New("output path cannot be empty")
	}

	// The tempo flag wins; otherwise fall back to a configured tempo.
	if !cmd.Flags().Changed("tempo") && viper.IsSet("tempo") {
		tempo = viper.GetFloat64("tempo")
	}
	if tempo < 0 {
		return fmt.Errorf("tempo must be positive, got %v", tempo)
	}

	return nil
}

func execute(_ *cobra.Command, args []string) error {
	lyricsPath := utils.ExpandPath(args[0])
	melodyPath := utils.ExpandPath(args[1])

	if tempo == 0 {
		bpm, err := askTempo()
		if err != nil {
			return err
		}
		tempo = bpm
	}

	if err := run(lyricsPath, melodyPath); err != nil {
		return err
	}

	if watch {
		return watchInputs(lyricsPath, melodyPath)
	}
	return nil
}

// askTempo prompts for the tempo when none was configured. Decimals are
// accepted since precise syncing may need them.
func askTempo() (float64, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return 0, errors.New("no tempo given: pass one with --tempo")
	}

	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return 0, fmt.Errorf("error parsing config: %v", err)
	}
	return ui.PromptTempo(cfg)
}

// run performs one full conversion: lyrics through lexconvert, phoneme
// segmentation, the melody walk, and the output file write.
func run(lyricsPath, melodyPath string) error {
	cfg, err := score.LoadConfigFromViper()
	if err != nil {
		return err
	}

	lyrics, err := os.ReadFile(lyricsPath)
	if err != nil {
		return fmt.Errorf("unable to read lyrics: %w", err)
	}

	converter := lexicon.NewConverter(lexconvertBin)
	if err := converter.Available(); err != nil {
		return err
	}
	phonemes, err := converter.Convert(context.Background(), string(lyrics))
	if err != nil {
		return err
	}

	tokens, err := score.NewTokenizer(cfg).Tokenize(phonemes)
	if err != nil {
		// Tokenization failures are recoverable: keep what parsed.
		log.Error("error parsing phonemes", "err", err)
	}
	syllables := score.Segment(tokens)
	log.Debug("segmented lyrics", "syllables", len(syllables))

	timeline, err := melody.Load(melodyPath, melody.TrackSelector{Index: trackIndex, Name: trackName})
	if err != nil {
		return err
	}

	result, err := score.NewSynchronizer(cfg).Synchronize(timeline, syllables, tempo)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		log.Warn(warning.Code.String(), "detail", warning.Message)
	}

	text := result.Score(phonemeOn)

	out := utils.ExpandPath(outputPath)
	if err := utils.EnsureParentDir(out); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("wrote score", "path", out, "size", humanize.Bytes(uint64(len(text))))

	if copyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("unable to copy score to clipboard: %w", err)
		}
		log.Info("copied score to clipboard")
	}

	return nil
}

// watchInputs re-runs the conversion whenever the lyrics or melody file
// changes, until interrupted.
func watchInputs(lyricsPath, melodyPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to watch inputs: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	// Watch the parent directories: editors often replace files rather
	// than writing them in place.
	watched := map[string]bool{lyricsPath: true, melodyPath: true}
	for path := range watched {
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
	}

	log.Info("watching for changes", "lyrics", lyricsPath, "melody", melodyPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Info("input changed; converting again", "path", event.Name)
			if err := run(lyricsPath, melodyPath); err != nil {
				// Keep watching: the next save may fix it.
				log.Error("conversion failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "err", err)
		}
	}
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().Float64VarP(&tempo, "tempo", "b", 0, "tempo in beats per minute (prompted for when omitted)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "path of the score file to write")
	rootCmd.Flags().IntVarP(&trackIndex, "track", "t", 0, "MIDI track index holding the melody")
	rootCmd.Flags().StringVar(&trackName, "track-name", "", "MIDI track name holding the melody (fuzzy-matched)")
	rootCmd.Flags().BoolVar(&phonemeOn, "phoneme-on", false, "prepend the [:phoneme on] control marker")
	rootCmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "also copy the score to the clipboard")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-convert whenever an input file changes")
	rootCmd.Flags().StringVar(&lexconvertBin, "lexconvert", lexicon.DefaultBinary, "lexconvert binary to invoke")

	// Config bindings
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("track", rootCmd.Flags().Lookup("track"))
	_ = viper.BindPFlag("track_name", rootCmd.Flags().Lookup("track-name"))
	_ = viper.BindPFlag("lexconvert", rootCmd.Flags().Lookup("lexconvert"))
	_ = viper.BindPFlag("score.phoneme_on", rootCmd.Flags().Lookup("phoneme-on"))

	viper.SetDefault("output", filepath.Join("output", "Output.spk"))
	viper.SetDefault("track", 0)
	viper.SetDefault("lexconvert", lexicon.DefaultBinary)
	score.SetDefaults()

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "midi2dectalk")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "midi2dectalk")}, dirs...)
	}

	if c := os.Getenv("MIDI2DECTALK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("midi2dectalk")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("midi2dectalk")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "midi2dectalk.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
