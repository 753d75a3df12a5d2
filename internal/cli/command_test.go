package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "vocabbuilder" {
		t.Errorf("Expected Use to be 'vocabbuilder', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Anki") {
		t.Errorf("Expected Short description to mention Anki")
	}

	// Test that flags are set up
	persistent := map[string]bool{"config": true, "log-level": true, "log-format": true}
	flagNames := []string{
		"config", "log-level", "log-format",
		"db", "lang", "batch", "since", "limit", "archive",
		"output", "deck-name", "anki-csv",
		"dictionary-url", "timeout",
		"translator", "target-lang", "openai-model", "gemini-model", "list-models",
	}

	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if persistent[name] {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}

	if err := cmd.Args(cmd, []string{"word"}); err == nil {
		t.Error("Expected positional arguments to be rejected")
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	outputFlag := cmd.Flags().Lookup("output")
	if outputFlag == nil {
		t.Fatal("output flag not found")
	}

	home, _ := os.UserHomeDir()
	if outputFlag.DefValue != home {
		t.Errorf("Expected default output dir to be %s, got %s", home, outputFlag.DefValue)
	}

	langFlag := cmd.Flags().Lookup("lang")
	if langFlag == nil {
		t.Fatal("lang flag not found")
	}
	if langFlag.DefValue != "fr" {
		t.Errorf("Expected default lang to be fr, got %s", langFlag.DefValue)
	}
	if langFlag.Shorthand != "l" {
		t.Errorf("Expected lang shorthand 'l', got %s", langFlag.Shorthand)
	}

	if err := cmd.Flags().Set("limit", "25"); err != nil {
		t.Fatalf("Failed to set limit: %v", err)
	}
	if flags.Limit != 25 {
		t.Errorf("Expected limit 25, got %d", flags.Limit)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		check     func(t *testing.T)
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `kindle:
  lang: de
translation:
  provider: none
  openai_key: test-key
output:
  directory: /test/output`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			check: func(t *testing.T) {
				if viper.GetString("kindle.lang") != "de" {
					t.Errorf("kindle.lang = %s, want de", viper.GetString("kindle.lang"))
				}
				if viper.GetString("output.directory") != "/test/output" {
					t.Errorf("output.directory = %s", viper.GetString("output.directory"))
				}
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				t.Setenv("HOME", t.TempDir())
				return ""
			},
			check: func(t *testing.T) {
				if viper.ConfigFileUsed() != "" && viper.IsSet("kindle.lang") {
					t.Errorf("Unexpected config loaded: %s", viper.ConfigFileUsed())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			InitConfig(tt.setupFunc(t))
			tt.check(t)

			// Test environment variable prefix
			t.Setenv("VOCABBUILDER_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			// Nested keys map to underscores
			t.Setenv("VOCABBUILDER_TRANSLATION_TARGET_LANG", "es")
			if viper.GetString("translation.target_lang") != "es" {
				t.Error("Nested environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()
	t.Setenv("GEMINI_API_KEY", "")
	viper.Set("translation.gemini_key", "config-gemini-key")

	if got := GetGeminiKey(); got != "config-gemini-key" {
		t.Errorf("GetGeminiKey() = %v, want config-gemini-key", got)
	}

	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	if got := GetGeminiKey(); got != "env-gemini-key" {
		t.Errorf("GetGeminiKey() = %v, want env-gemini-key", got)
	}
}

func TestBindFlagsToViper(t *testing.T) {
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

	// Set some flag values
	cmd.Flags().Set("output", "/test/output")
	cmd.Flags().Set("db", "/mnt/kindle/vocab.db")
	cmd.Flags().Set("translator", "none")
	cmd.PersistentFlags().Set("log-level", "debug")

	bindFlagsToViper(cmd)

	expected := map[string]string{
		"output.directory":     "/test/output",
		"kindle.db":            "/mnt/kindle/vocab.db",
		"translation.provider": "none",
		"log.level":            "debug",
	}
	for key, want := range expected {
		if got := viper.GetString(key); got != want {
			t.Errorf("Expected %s to be %s, got %s", key, want, got)
		}
	}
}
