package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostwriter-api/internal/config"
)

func newTestFactory() *EinoFactory {
	return NewEinoFactory(&config.Config{LLM: config.LLMConfig{
		DefaultProvider: "openai",
		Providers: map[string]config.ProviderConfig{
			"openai": {APIKey: "sk-test", Model: "gpt-4o-2024-11-20", MaxTokens: 2000, Temperature: 0.8, ContextWindow: 64000},
			"local":  {Model: "llama"},
		},
	}})
}

func TestEinoFactory_Describe(t *testing.T) {
	f := newTestFactory()

	info := f.Describe("")
	assert.Equal(t, "openai", info.Provider)
	assert.Equal(t, "gpt-4o-2024-11-20", info.Model)
	assert.Equal(t, 64000, info.ContextWindow)

	info = f.Describe("local")
	assert.Equal(t, defaultContextWindow, info.ContextWindow)

	info = f.Describe("missing")
	assert.Equal(t, "missing", info.Provider)
	assert.Empty(t, info.Model)
}

func TestEinoFactory_Get_Errors(t *testing.T) {
	f := newTestFactory()

	_, err := f.Get(context.Background(), "missing")
	assert.ErrorContains(t, err, "provider missing not found")

	_, err = f.Get(context.Background(), "local")
	assert.ErrorContains(t, err, "no api key")
}

func TestEinoFactory_Get_CachesClient(t *testing.T) {
	f := newTestFactory()

	m1, err := f.Get(context.Background(), "")
	require.NoError(t, err)
	m2, err := f.Get(context.Background(), "openai")
	require.NoError(t, err)
	assert.Same(t, m1, m2)
}
