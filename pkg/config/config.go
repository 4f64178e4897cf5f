package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/secstmt/pkg/messages"
)

const envPrefix = "SECSTMT"

// Output formats accepted by the "output" key.
const (
	OutputPretty  = "pretty"
	OutputJSON    = "json"
	OutputSummary = "summary"
	OutputCSV     = "csv"
)

var outputs = []string{OutputPretty, OutputJSON, OutputSummary, OutputCSV}

type Config struct {
	Language  messages.Language
	LogLevel  log.Level
	Output    string
	Messages  string // optional catalog override file
	XLSX      string // optional workbook export path
	OutputDir string
}

// GetOutputPath returns the directory generated files are written to.
// An empty value means next to the input file.
func (c *Config) GetOutputPath() string {
	return c.OutputDir
}

// Catalog returns the message catalog, honoring the override file.
func (c *Config) Catalog() (*messages.Catalog, error) {
	if c.Messages == "" {
		return messages.Default(), nil
	}
	return messages.LoadFile(c.Messages)
}

// NewLogger returns a logger at the configured level.
func (c *Config) NewLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    c.LogLevel == log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           c.LogLevel,
	})
}

// Default is the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Language: messages.Spanish,
		LogLevel: log.InfoLevel,
		Output:   OutputPretty,
	}
}

// Build resolves the configuration from, in increasing precedence: defaults,
// the config file, a .env file in the working directory, SECSTMT_*
// environment variables and explicitly set flags. flags may be nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("language", "es")
	v.SetDefault("log_level", "info")
	v.SetDefault("output", OutputPretty)
	v.SetDefault("messages", "")
	v.SetDefault("xlsx", "")
	v.SetDefault("output_dir", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"language":   "lang",
			"log_level":  "log-level",
			"output":     "output",
			"messages":   "messages",
			"xlsx":       "xlsx",
			"output_dir": "output-dir",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	lang, err := messages.ParseLanguage(v.GetString("language"))
	if err != nil {
		return nil, err
	}
	level, err := log.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", v.GetString("log_level"), err)
	}
	output := strings.ToLower(v.GetString("output"))
	if !validOutput(output) {
		return nil, fmt.Errorf("invalid output %q: must be one of %s", output, strings.Join(outputs, ", "))
	}

	return &Config{
		Language:  lang,
		LogLevel:  level,
		Output:    output,
		Messages:  v.GetString("messages"),
		XLSX:      v.GetString("xlsx"),
		OutputDir: v.GetString("output_dir"),
	}, nil
}

func validOutput(s string) bool {
	for _, o := range outputs {
		if o == s {
			return true
		}
	}
	return false
}
