package score

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads the engine configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	// Symbol tables
	if viper.IsSet("score.vowels") {
		cfg.Vowels = viper.GetStringSlice("score.vowels")
	}
	if viper.IsSet("score.consonants") {
		cfg.Consonants = viper.GetStringSlice("score.consonants")
	}
	if viper.IsSet("score.word_separator") {
		cfg.WordSeparator = viper.GetString("score.word_separator")
	}
	if viper.IsSet("score.rest_symbol") {
		cfg.RestSymbol = viper.GetString("score.rest_symbol")
	}

	// Durations
	if viper.IsSet("score.default_consonant_duration") {
		cfg.DefaultConsonantDuration = viper.GetInt("score.default_consonant_duration")
	}
	if viper.IsSet("score.consonant_durations") {
		durations, err := intMap(viper.GetStringMap("score.consonant_durations"))
		if err != nil {
			return cfg, fmt.Errorf("score.consonant_durations: %w", err)
		}
		cfg.ConsonantDurations = durations
	}

	// Translation
	if viper.IsSet("score.translations") {
		cfg.Translations = viper.GetStringMapString("score.translations")
	}

	// Pitch and event policies
	if viper.IsSet("score.pitch_delta") {
		cfg.PitchDelta = viper.GetInt("score.pitch_delta")
	}
	if viper.IsSet("score.match_note_off_pitch") {
		cfg.MatchNoteOffPitch = viper.GetBool("score.match_note_off_pitch")
	}
	if viper.IsSet("score.zero_velocity_note_off") {
		cfg.ZeroVelocityIsNoteOff = viper.GetBool("score.zero_velocity_note_off")
	}
	if viper.IsSet("score.phoneme_on") {
		cfg.WritePhonemeOn = viper.GetBool("score.phoneme_on")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid score configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults sets default values in Viper for the engine configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("score.vowels", defaults.Vowels)
	viper.SetDefault("score.consonants", defaults.Consonants)
	viper.SetDefault("score.word_separator", defaults.WordSeparator)
	viper.SetDefault("score.rest_symbol", defaults.RestSymbol)
	viper.SetDefault("score.default_consonant_duration", defaults.DefaultConsonantDuration)
	viper.SetDefault("score.pitch_delta", defaults.PitchDelta)
	viper.SetDefault("score.match_note_off_pitch", defaults.MatchNoteOffPitch)
	viper.SetDefault("score.zero_velocity_note_off", defaults.ZeroVelocityIsNoteOff)
	viper.SetDefault("score.phoneme_on", defaults.WritePhonemeOn)
}

// intMap coerces a viper string map into per-symbol integer durations.
// YAML gives ints, environment overrides give strings.
func intMap(raw map[string]interface{}) (map[string]int, error) {
	result := make(map[string]int, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case int:
			result[key] = v
		case int64:
			result[key] = int(v)
		case float64:
			result[key] = int(v)
		case string:
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("value for %q is not an integer: %q", key, v)
			}
			result[key] = parsed
		default:
			return nil, fmt.Errorf("value for %q is not an integer: %v", key, value)
		}
	}
	return result, nil
}
