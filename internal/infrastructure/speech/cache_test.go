package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSpeaker struct {
	calls int
	err   error
}

func (c *countingSpeaker) Synthesize(_ context.Context, text, voice string) ([]byte, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []byte(voice + ":" + text), nil
}

func TestCachedSpeaker(t *testing.T) {
	next := &countingSpeaker{}
	s, err := NewCachedSpeaker(next, 2)
	require.NoError(t, err)
	ctx := context.Background()

	a1, err := s.Synthesize(ctx, "oi", "pm_alex")
	require.NoError(t, err)
	a2, err := s.Synthesize(ctx, "oi", "pm_alex")
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, 1, next.calls)

	_, err = s.Synthesize(ctx, "oi", "pf_dora")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedSpeaker_ErrorsNotCached(t *testing.T) {
	next := &countingSpeaker{err: errors.New("boom")}
	s, err := NewCachedSpeaker(next, 0)
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "x", "v")
	assert.Error(t, err)
	_, err = s.Synthesize(context.Background(), "x", "v")
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}
