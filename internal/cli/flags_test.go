package cli

import (
	"reflect"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"DBPath", flags.DBPath, "/Volumes/Kindle/system/vocabulary/vocab.db"},
		{"Lang", flags.Lang, "fr"},
		{"DeckName", flags.DeckName, "Vocabulary Builder"},
		{"DictionaryURL", flags.DictionaryURL, "https://www.larousse.fr/dictionnaires/francais/%s/"},
		{"Timeout", flags.Timeout, 15 * time.Second},
		{"TranslationProvider", flags.TranslationProvider, "openai"},
		{"TargetLang", flags.TargetLang, "en"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini"},
		{"GeminiModel", flags.GeminiModel, "gemini-2.0-flash"},
		{"LogLevel", flags.LogLevel, "warn"},
		{"LogFormat", flags.LogFormat, "text"},
		{"Limit", flags.Limit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"AnkiCSV", flags.AnkiCSV},
		{"Archive", flags.Archive},
		{"ListModels", flags.ListModels},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"OutputDir", flags.OutputDir},
		{"BatchFile", flags.BatchFile},
		{"Since", flags.Since},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestSinceTime(t *testing.T) {
	tests := []struct {
		name    string
		since   string
		want    time.Time
		wantErr bool
	}{
		{"empty", "", time.Time{}, false},
		{"date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), false},
		{"wrong format", "15/03/2024", time.Time{}, true},
		{"not a date", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &Flags{Since: tt.since}
			got, err := flags.SinceTime()
			if (err != nil) != tt.wantErr {
				t.Fatalf("SinceTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("SinceTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFromViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Explicit flag
	cmd.Flags().Set("lang", "de")
	// Config values
	viper.Set("translation.provider", "gemini")
	viper.Set("dictionary.timeout", "3s")

	flags.LoadFromViper()

	if flags.Lang != "de" {
		t.Errorf("Lang = %s, want de", flags.Lang)
	}
	if flags.TranslationProvider != "gemini" {
		t.Errorf("TranslationProvider = %s, want gemini", flags.TranslationProvider)
	}
	if flags.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", flags.Timeout)
	}
	if flags.DeckName != "Vocabulary Builder" {
		t.Errorf("DeckName = %s, want Vocabulary Builder", flags.DeckName)
	}
	if flags.DBPath != "/Volumes/Kindle/system/vocabulary/vocab.db" {
		t.Errorf("DBPath = %s, want the Kindle default", flags.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"default", 15 * time.Second, false},
		{"minimum", time.Second, false},
		{"bare number read as nanoseconds", 15 * time.Nanosecond, true},
		{"zero", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			flags.Timeout = tt.timeout
			if err := flags.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromViper_BareTimeoutRejected(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)
	viper.Set("dictionary.timeout", 15)

	flags.LoadFromViper()

	if err := flags.Validate(); err == nil {
		t.Errorf("Expected a unitless timeout (%v) to be rejected", flags.Timeout)
	}
}

func TestFlagsStructure(t *testing.T) {
	// Test that Flags struct has all expected fields
	flags := &Flags{}
	flagsType := reflect.TypeOf(*flags)

	expectedFields := []string{
		"CfgFile", "DBPath", "Lang", "BatchFile", "OutputDir", "DeckName",
		"AnkiCSV", "Since", "Limit", "Archive", "ListModels",
		"DictionaryURL", "Timeout",
		"TranslationProvider", "TargetLang", "OpenAIModel", "GeminiModel",
		"LogLevel", "LogFormat",
	}

	for _, fieldName := range expectedFields {
		t.Run("has_field_"+fieldName, func(t *testing.T) {
			if _, ok := flagsType.FieldByName(fieldName); !ok {
				t.Errorf("Flags struct missing field: %s", fieldName)
			}
		})
	}
}
