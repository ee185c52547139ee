package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:10.0.0.1:generate", BuildRateLimitKey("10.0.0.1", "generate"))
}
