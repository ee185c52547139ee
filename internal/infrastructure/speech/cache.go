package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	workflowport "ghostwriter-api/internal/workflow/port"
	"ghostwriter-api/pkg/metrics"
)

var _ workflowport.Speaker = (*CachedSpeaker)(nil)

// CachedSpeaker 按 (音色, 文本) 缓存合成结果
type CachedSpeaker struct {
	next  workflowport.Speaker
	cache *lru.Cache[string, []byte]
}

// NewCachedSpeaker 创建带 LRU 缓存的合成器
func NewCachedSpeaker(next workflowport.Speaker, size int) (*CachedSpeaker, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts cache: %w", err)
	}
	return &CachedSpeaker{next: next, cache: cache}, nil
}

// Synthesize 命中缓存时直接返回，失败结果不缓存
func (c *CachedSpeaker) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	key := cacheKey(text, voice)
	if audio, ok := c.cache.Get(key); ok {
		metrics.TTSCacheTotal.WithLabelValues("hit").Inc()
		return audio, nil
	}
	metrics.TTSCacheTotal.WithLabelValues("miss").Inc()

	audio, err := c.next.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, audio)
	return audio, nil
}

func cacheKey(text, voice string) string {
	sum := sha256.Sum256([]byte(voice + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
