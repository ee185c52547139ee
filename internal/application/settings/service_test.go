package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/infrastructure/persistence/memory"
	workflowprompt "ghostwriter-api/internal/workflow/prompt"
)

type mapCache struct {
	data    map[string][]byte
	loads   int
	deletes int
	fail    error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetOrLoadSafe(ctx context.Context, key string, _ time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	c.loads++
	v, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func TestGet_DefaultsWhenAbsent(t *testing.T) {
	svc := NewService(memory.NewStore().Settings(), nil, time.Minute)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.SettingsID, got.ID)
	assert.Equal(t, "pm_alex", got.TTSVoice)
	require.NotNil(t, got.PromptTemplate)
	assert.Equal(t, workflowprompt.DefaultParagraphTemplate, *got.PromptTemplate)
}

func TestUpdate_EmptyValuesFallBack(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Settings(), nil, time.Minute)
	ctx := context.Background()

	empty := ""
	got, err := svc.Update(ctx, Update{PromptTemplate: &empty, TTSVoice: &empty})
	require.NoError(t, err)
	assert.Equal(t, workflowprompt.DefaultParagraphTemplate, *got.PromptTemplate)
	assert.Equal(t, "pm_alex", got.TTSVoice)

	stored, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored.PromptTemplate)
}

func TestUpdate_CustomValuesAndCacheInvalidation(t *testing.T) {
	store := memory.NewStore()
	cache := newMapCache()
	svc := NewService(store.Settings(), cache, time.Minute)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.loads)

	tpl, voice := "Meu modelo {{PROJECT_CONTEXT}}", "pf_dora"
	_, err = svc.Update(ctx, Update{PromptTemplate: &tpl, TTSVoice: &voice})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, tpl, got.Template())
	assert.Equal(t, "pf_dora", got.Voice())
	assert.Equal(t, 2, cache.loads)
}

func TestGet_CacheFailureFallsBackToRepository(t *testing.T) {
	store := memory.NewStore()
	voice := "pm_santa"
	require.NoError(t, store.Settings().Upsert(context.Background(), &entity.Settings{TTSVoice: voice}))

	cache := newMapCache()
	cache.fail = errors.New("redis down")
	svc := NewService(store.Settings(), cache, time.Minute)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, voice, got.TTSVoice)
}
