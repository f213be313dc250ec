package botenv

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"calcbot/internal/chat"
)

type Configuration struct {
	Prefix  string `json:"Prefix"`
	Token   string `json:"Token"`
	GuildID string `json:"GuildID"`
	// MaxExpressionLength bounds calc input; the evaluator recurses once per
	// nesting level and has no limit of its own.
	MaxExpressionLength int      `json:"MaxExpressionLength"`
	HistoryLimit        int      `json:"HistoryLimit"`
	ChatTimeout         Duration `json:"ChatTimeout"`
	CacheTTL            Duration `json:"CacheTTL"`

	Chat    chat.Config   `json:"Chat"`
	Log     LogConfig     `json:"Log"`
	Storage StorageConfig `json:"Storage"`
}

type LogConfig struct {
	Level      string `json:"Level"`
	Path       string `json:"Path"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
}

type StorageConfig struct {
	// Database is the SQLite file for calculation history. Empty disables history.
	Database string `json:"Database"`
	// IndexPath is the bleve index directory; empty keeps the index in memory.
	IndexPath string `json:"IndexPath"`
	// CacheDir is the badger directory; empty keeps the cache in memory.
	CacheDir string `json:"CacheDir"`
	// DisableCache turns the result cache off.
	DisableCache bool `json:"DisableCache"`
}

// Duration reads "90s"-style strings from JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// Environment variables that override the secrets in the config file.
const (
	EnvDiscordToken = "DISCORD_TOKEN"
	EnvChatToken    = "CHAT_API_TOKEN"
)

// DefaultConfiguration holds the values used for anything the file leaves unset.
func DefaultConfiguration() Configuration {
	return Configuration{
		Prefix:              "calc!",
		MaxExpressionLength: 256,
		HistoryLimit:        10,
		ChatTimeout:         Duration{2 * time.Minute},
		CacheTTL:            Duration{time.Hour},
		Log: LogConfig{
			Level:      "debug",
			Path:       "logs/calcbot.log",
			MaxSizeMB:  10,
			MaxBackups: 7,
			MaxAgeDays: 28,
		},
		Storage: StorageConfig{
			Database: "calcbot.db",
		},
	}
}

// LoadConfig reads the JSON file at path over the defaults and applies the
// environment overrides. A missing Discord token is an error.
func LoadConfig(path string) (*Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if v, ok := os.LookupEnv(EnvDiscordToken); ok && v != "" {
		config.Token = v
	}
	if v, ok := os.LookupEnv(EnvChatToken); ok && v != "" {
		config.Chat.APIKey = v
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Configuration) validate() error {
	c.Token = strings.TrimSpace(c.Token)
	if c.Token == "" {
		return fmt.Errorf("'%s' not found: set Token in the config file or the environment", EnvDiscordToken)
	}
	if c.Prefix == "" {
		return fmt.Errorf("Prefix must not be empty")
	}
	if c.MaxExpressionLength <= 0 {
		return fmt.Errorf("MaxExpressionLength must be positive, got %d", c.MaxExpressionLength)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HistoryLimit must be positive, got %d", c.HistoryLimit)
	}
	return nil
}
