package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GW_TEST_SET", "from-env")

	assert.Equal(t, "from-env", expandEnv("${GW_TEST_SET:fallback}"))
	assert.Equal(t, "fallback", expandEnv("${GW_TEST_UNSET_X:fallback}"))
	assert.Equal(t, "", expandEnv("${GW_TEST_UNSET_X:}"))
	assert.Equal(t, "${GW_TEST_UNSET_X}", expandEnv("${GW_TEST_UNSET_X}"))
}

func TestLoadFromDir_DefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
app:
  name: ghostwriter-api
server:
  http:
    port: ${GW_TEST_PORT:9090}
llm:
  default_provider: openai
  providers:
    openai:
      api_key: ${GW_TEST_OPENAI_KEY:sk-test}
      model: gpt-4o-2024-11-20
      max_tokens: 2000
      temperature: 0.8
      context_window: 128000
`)
	t.Setenv("APP_ENV", "unittest")
	writeFile(t, dir, "config.unittest.yaml", `
observability:
  logging:
    level: debug
`)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.HTTP.Addr())
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)

	p := cfg.LLM.Providers["openai"]
	assert.Equal(t, "sk-test", p.APIKey)
	assert.Equal(t, 2000, p.MaxTokens)
	assert.InDelta(t, 0.8, p.Temperature, 1e-9)
	assert.Equal(t, 128000, p.ContextWindow)

	assert.Equal(t, "pm_alex", cfg.Speech.TTS.DefaultVoice)
	assert.Equal(t, 1000, cfg.Speech.TTS.StreamMaxChars)
	assert.Equal(t, 2*time.Second, cfg.Speech.TTS.PollInterval)
	assert.Equal(t, 30, cfg.Speech.TTS.PollAttempts)
	assert.Equal(t, "whisper-1", cfg.Speech.Transcription.Model)
	assert.False(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
}

func TestLoadFromDir_MissingBaseFile(t *testing.T) {
	_, err := LoadFromDir(t.TempDir())
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "gw", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=gw sslmode=disable", c.DSN())
}
