package cli

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabbuilder/internal/anki"
	"codeberg.org/snonux/vocabbuilder/internal/definition"
	"codeberg.org/snonux/vocabbuilder/internal/kindle"
	"codeberg.org/snonux/vocabbuilder/internal/translation"
)

// sinceLayout is the date format accepted by --since
const sinceLayout = "2006-01-02"

// MinTimeout is the shortest dictionary timeout accepted. A bare number in
// the config file is read as nanoseconds, so it needs a unit such as "15s".
const MinTimeout = time.Second

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	DBPath     string
	Lang       string
	BatchFile  string
	OutputDir  string
	DeckName   string
	AnkiCSV    bool
	Since      string
	Limit      int
	Archive    bool
	ListModels bool

	// Dictionary flags
	DictionaryURL string
	Timeout       time.Duration

	// Translation flags
	TranslationProvider string
	TargetLang          string
	OpenAIModel         string
	GeminiModel         string

	// Logging flags
	LogLevel  string
	LogFormat string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DBPath:              kindle.DefaultDBPath,
		Lang:                kindle.DefaultLanguage,
		DeckName:            anki.DefaultDeckName,
		DictionaryURL:       definition.DefaultURLTemplate,
		Timeout:             15 * time.Second,
		TranslationProvider: "openai",
		TargetLang:          "en",
		OpenAIModel:         translation.DefaultOpenAIModel,
		GeminiModel:         translation.DefaultGeminiModel,
		LogLevel:            "warn",
		LogFormat:           "text",
	}
}

// LoadFromViper fills the configurable flags from viper, which resolves
// explicit flags, environment variables and the config file in that order
func (f *Flags) LoadFromViper() {
	f.DBPath = viper.GetString("kindle.db")
	f.Lang = viper.GetString("kindle.lang")
	f.OutputDir = viper.GetString("output.directory")
	f.DeckName = viper.GetString("anki.deck_name")
	f.DictionaryURL = viper.GetString("dictionary.url")
	f.Timeout = viper.GetDuration("dictionary.timeout")
	f.TranslationProvider = viper.GetString("translation.provider")
	f.TargetLang = viper.GetString("translation.target_lang")
	f.OpenAIModel = viper.GetString("translation.openai_model")
	f.GeminiModel = viper.GetString("translation.gemini_model")
	f.LogLevel = viper.GetString("log.level")
	f.LogFormat = viper.GetString("log.format")
}

// Validate rejects flag values that would make every lookup fail
func (f *Flags) Validate() error {
	if f.Timeout < MinTimeout {
		return fmt.Errorf("dictionary timeout %v is below %v, use a duration with a unit such as 15s", f.Timeout, MinTimeout)
	}
	return nil
}

// SinceTime parses --since. The zero time means no lower bound.
func (f *Flags) SinceTime() (time.Time, error) {
	if f.Since == "" {
		return time.Time{}, nil
	}

	since, err := time.ParseInLocation(sinceLayout, f.Since, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since date '%s', expected YYYY-MM-DD: %w", f.Since, err)
	}
	return since, nil
}
