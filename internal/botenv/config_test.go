package botenv_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcbot/internal/botenv"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(botenv.EnvDiscordToken, "")
	t.Setenv(botenv.EnvChatToken, "")
	path := writeConfig(t, `{
		"Prefix": "c!",
		"Token": "discord-token",
		"ChatTimeout": "30s",
		"Chat": {"Provider": "cohere", "APIKey": "cohere-key"},
		"Storage": {"Database": ":memory:"}
	}`)

	config, err := botenv.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "c!", config.Prefix)
	assert.Equal(t, "discord-token", config.Token)
	assert.Equal(t, 30*time.Second, config.ChatTimeout.Duration)
	assert.Equal(t, "cohere", config.Chat.Provider)
	assert.Equal(t, "cohere-key", config.Chat.APIKey)
	assert.Equal(t, ":memory:", config.Storage.Database)

	// Defaults survive for fields the file does not set.
	assert.Equal(t, 256, config.MaxExpressionLength)
	assert.Equal(t, 10, config.HistoryLimit)
	assert.Equal(t, time.Hour, config.CacheTTL.Duration)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(botenv.EnvDiscordToken, "from-env")
	t.Setenv(botenv.EnvChatToken, "chat-from-env")
	path := writeConfig(t, `{"Token": "from-file", "Chat": {"Provider": "openai", "APIKey": "from-file"}}`)

	config, err := botenv.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Token)
	assert.Equal(t, "chat-from-env", config.Chat.APIKey)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(botenv.EnvDiscordToken, "")
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing-token", `{}`, "'DISCORD_TOKEN' not found"},
		{"bad-json", `{"Token": `, "parsing"},
		{"bad-duration", `{"Token": "t", "ChatTimeout": "soon"}`, "invalid duration"},
		{"numeric-duration", `{"Token": "t", "CacheTTL": 5}`, "duration must be a string"},
		{"zero-length", `{"Token": "t", "MaxExpressionLength": 0}`, "MaxExpressionLength"},
		{"empty-prefix", `{"Token": "t", "Prefix": ""}`, "Prefix"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := botenv.LoadConfig(writeConfig(t, c.body))
			assert.ErrorContains(t, err, c.want)
		})
	}

	_, err := botenv.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
